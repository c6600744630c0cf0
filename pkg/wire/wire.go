// Package wire exposes a dispatch context over HTTP: a REST surface
// for issuing notifications from other processes and a websocket
// endpoint that streams notification lifecycle frames to connected
// clients, each of which is backed by its own display surface.
package wire

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-toastify/toastify/pkg/toast"
)

// Config tunes the websocket transport.
type Config struct {
	// ReadBufferSize and WriteBufferSize size the upgrader's buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// SendBuffer is the per-connection outbound frame queue length.
	SendBuffer int

	// ReadTimeout bounds how long a connection may stay silent. Pings
	// from the write loop keep healthy clients inside the window.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration

	// CheckOrigin overrides the upgrader's origin policy. Nil accepts
	// same-origin requests only.
	CheckOrigin func(*http.Request) bool

	// TracerName names the OpenTelemetry tracer used for request and
	// frame spans (default: "toastify").
	TracerName string
}

// DefaultConfig returns sensible transport defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		SendBuffer:      64,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		TracerName:      defaultTracerName,
	}
}

// Server serves the notification API for one dispatch context.
type Server struct {
	ctx      *toast.Context
	config   *Config
	upgrader websocket.Upgrader
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewServer creates a wire server over the dispatch context.
func NewServer(ctx *toast.Context, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		defaults := DefaultConfig()
		if config.ReadBufferSize == 0 {
			config.ReadBufferSize = defaults.ReadBufferSize
		}
		if config.WriteBufferSize == 0 {
			config.WriteBufferSize = defaults.WriteBufferSize
		}
		if config.SendBuffer == 0 {
			config.SendBuffer = defaults.SendBuffer
		}
		if config.ReadTimeout == 0 {
			config.ReadTimeout = defaults.ReadTimeout
		}
		if config.WriteTimeout == 0 {
			config.WriteTimeout = defaults.WriteTimeout
		}
		if config.PingInterval == 0 {
			config.PingInterval = defaults.PingInterval
		}
		if config.TracerName == "" {
			config.TracerName = defaults.TracerName
		}
	}

	return &Server{
		ctx:    ctx,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		tracer: otel.Tracer(config.TracerName),
		logger: ctx.Logger().With("component", "wire"),
	}
}

// Router builds the HTTP routing table:
//
//   - GET    /ws                → websocket upgrade, one surface per client
//   - POST   /toasts            → dispatch a notification
//   - PATCH  /toasts/{id}       → update a live notification
//   - DELETE /toasts/{id}       → dismiss one notification
//   - DELETE /toasts            → dismiss everything
//   - GET    /toasts/{id}       → activity check
//   - GET    /metrics           → Prometheus metrics
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(traceMiddleware(s.tracer))

	r.Get("/ws", s.handleWebSocket)
	r.Route("/toasts", func(r chi.Router) {
		r.Post("/", s.handleShow)
		r.Delete("/", s.handleDismissAll)
		r.Get("/{id}", s.handleIsActive)
		r.Patch("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDismiss)
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// handleWebSocket upgrades the request and binds a display surface to
// the connection for its lifetime. The container identifier comes from
// the ?container query parameter.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	containerID := r.URL.Query().Get("container")
	if containerID == "" {
		containerID = toast.DefaultContainerID
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	s.logger.Debug("client connected", "container_id", containerID)
	c := newConn(ws, s.ctx, containerID, s.config, s.tracer, s.logger)
	c.run()
}

// showRequest is the REST dispatch body.
type showRequest struct {
	Content     any      `json:"content"`
	Type        string   `json:"notificationType,omitempty"`
	AutoCloseMS *int64   `json:"autoClose,omitempty"`
	ToastID     toast.ID `json:"toastId,omitempty"`
	ContainerID string   `json:"containerId,omitempty"`
	RTL         bool     `json:"rtl,omitempty"`
	Role        string   `json:"role,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
}

func (req *showRequest) options() toast.Options {
	o := toast.Options{
		Type:        toast.Type(req.Type),
		ToastID:     req.ToastID,
		ContainerID: req.ContainerID,
		RTL:         req.RTL,
		Role:        req.Role,
		Progress:    req.Progress,
	}
	if req.AutoCloseMS != nil {
		o.AutoClose = durationFromMS(*req.AutoCloseMS)
	}
	return o
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == nil {
		s.writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	id := s.ctx.Show(req.Content, req.options())
	s.writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := toast.ID(chi.URLParam(r, "id"))

	var req showRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := req.options()
	if req.Content != nil {
		content := req.Content
		opts.Render = func() any { return content }
	}

	s.ctx.Update(id, opts)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.ctx.Dismiss(toast.ID(chi.URLParam(r, "id")))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissAll(w http.ResponseWriter, r *http.Request) {
	s.ctx.DismissAll()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIsActive(w http.ResponseWriter, r *http.Request) {
	id := toast.ID(chi.URLParam(r, "id"))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"active": s.ctx.IsActive(id),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
