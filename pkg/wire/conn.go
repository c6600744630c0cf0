package wire

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-toastify/toastify/pkg/surface"
	"github.com/go-toastify/toastify/pkg/toast"
)

// conn binds one websocket client to its own display surface. Outbound
// lifecycle frames stream from the surface hooks through sendCh; the
// read loop maps the client's interaction frames back onto the surface.
type conn struct {
	ws      *websocket.Conn
	ctx     *toast.Context
	surface *surface.Surface
	tracer  trace.Tracer
	logger  *slog.Logger
	config  *Config

	sendCh chan Frame
	done   chan struct{}
	closed atomic.Bool

	wmu sync.Mutex
}

func newConn(ws *websocket.Conn, ctx *toast.Context, containerID string, cfg *Config, tracer trace.Tracer, logger *slog.Logger) *conn {
	c := &conn{
		ws:     ws,
		ctx:    ctx,
		tracer: tracer,
		logger: logger.With("container_id", containerID),
		config: cfg,
		sendCh: make(chan Frame, cfg.SendBuffer),
		done:   make(chan struct{}),
	}

	hooks := surface.Hooks{
		OnShow: func(item *toast.Item) {
			c.send(Frame{Type: FrameShow, Toast: payloadFor(item)})
		},
		OnClosing: func(item *toast.Item) {
			c.send(Frame{Type: FrameClosing, ToastID: item.ID})
		},
		OnRemove: func(item *toast.Item) {
			c.send(Frame{Type: FrameRemove, ToastID: item.ID})
		},
	}
	c.surface = surface.New(ctx,
		surface.WithID(containerID),
		surface.WithLogger(logger),
		surface.WithHooks(hooks),
	)

	// Change frames let the client mirror the active count without
	// recounting show/remove frames.
	cancel := ctx.OnChange(func(count int, surfaceID string) {
		if surfaceID == containerID {
			c.send(Frame{Type: FrameChange, Count: count})
		}
	})
	go func() {
		<-c.done
		cancel()
	}()

	return c
}

// run mounts the surface and blocks until the connection drops.
func (c *conn) run() {
	c.surface.Mount()
	defer c.close()

	go c.writeLoop()
	c.readLoop()
}

// send queues an outbound frame. A full buffer drops the frame with a
// warning rather than blocking the surface's lifecycle.
func (c *conn) send(f Frame) {
	if c.closed.Load() {
		return
	}
	select {
	case c.sendCh <- f:
	default:
		c.logger.Warn("send buffer full, dropping frame", "frame_type", f.Type)
	}
}

// readLoop decodes interaction frames until the connection closes.
func (c *conn) readLoop() {
	for {
		c.ws.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))

		var f Frame
		if err := c.ws.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}
		c.handleFrame(f)
	}
}

// handleFrame maps one interaction frame onto the surface, wrapped in
// a server span so client interactions show up in traces next to the
// HTTP dispatch spans.
func (c *conn) handleFrame(f Frame) {
	_, span := c.tracer.Start(context.Background(),
		"wire.frame."+f.Type,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("toastify.container_id", c.surface.ID()),
			attribute.String("toastify.toast_id", string(f.ToastID)),
		),
	)
	defer span.End()

	switch f.Type {
	case FramePointerEnter:
		c.surface.PointerEnter(f.ToastID)
	case FramePointerLeave:
		c.surface.PointerLeave(f.ToastID)
	case FrameWindowBlur:
		c.surface.WindowBlur()
	case FrameWindowFocus:
		c.surface.WindowFocus()
	case FrameDragStart:
		c.surface.BeginDrag(f.ToastID)
	case FrameDragEnd:
		c.surface.EndDrag(f.ToastID, f.PastThreshold)
	case FrameCloseComplete:
		c.surface.CloseComplete(f.ToastID)
	case FrameDismiss:
		c.ctx.Dismiss(f.ToastID)
	default:
		span.SetStatus(codes.Error, "unknown frame type")
		c.logger.Warn("unknown frame type", "frame_type", f.Type)
	}
}

// writeLoop drains sendCh and keeps the connection alive with pings.
func (c *conn) writeLoop() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case f := <-c.sendCh:
			if err := c.writeFrame(f); err != nil {
				c.logger.Error("write error", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			c.wmu.Lock()
			c.ws.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			err := c.ws.WriteMessage(websocket.PingMessage, nil)
			c.wmu.Unlock()
			if err != nil {
				c.close()
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *conn) writeFrame(f Frame) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
	return c.ws.WriteJSON(f)
}

// close tears down the surface and the socket. Safe to call twice.
func (c *conn) close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	c.surface.Unmount()
	c.ws.Close()
	c.logger.Debug("connection closed")
}
