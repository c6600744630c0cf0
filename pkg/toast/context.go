package toast

import (
	"log/slog"
	"sync"

	"github.com/go-toastify/toastify/pkg/bus"
	"github.com/go-toastify/toastify/pkg/loop"
)

// Context is the dispatch context: the bus, registry, pending queue,
// and scheduler a dispatcher and its surfaces share. It replaces
// process-wide module state with an explicitly constructed object the
// application entry point owns and injects; tests build a fresh Context
// per case.
type Context struct {
	bus      *bus.Bus[Action, Event]
	loop     *loop.Loop
	registry *Registry
	queue    pendingQueue
	logger   *slog.Logger
	metrics  *Metrics
	defaults Options
	mounter  MountFunc

	// Lazy-mount arming state.
	mu         sync.Mutex
	lazyArmed  bool
	surfaceCfg SurfaceConfig
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Context) { c.metrics = m }
}

// WithDefaults overrides the baseline options merged under every
// dispatch.
func WithDefaults(defaults Options) Option {
	return func(c *Context) { c.defaults = DefaultOptions().merge(defaults) }
}

// WithMounter provides the rendering collaborator's capability to
// create and mount a display surface on demand (lazy mount).
func WithMounter(fn MountFunc) Option {
	return func(c *Context) { c.mounter = fn }
}

// WithLoop substitutes the scheduler. Useful when the embedding
// application already owns an event loop.
func WithLoop(l *loop.Loop) Option {
	return func(c *Context) {
		if l != nil {
			c.loop = l
		}
	}
}

// New creates a dispatch context.
func New(opts ...Option) *Context {
	c := &Context{
		bus:      bus.New[Action, Event](),
		loop:     loop.New(),
		registry: NewRegistry(),
		logger:   slog.Default(),
		defaults: DefaultOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "toast")
	c.bus.WithLogger(c.logger)
	c.loop.WithLogger(c.logger)

	// The active gauge tracks surface counts reported on the bus.
	if c.metrics != nil {
		c.bus.On(ActionChange, func(e Event) {
			c.metrics.setActive(e.SurfaceID, e.Count)
		})
	}

	return c
}

// Bus returns the context's event bus. Surfaces subscribe to show and
// clear actions here; external observers may subscribe to change and
// mount lifecycle actions.
func (c *Context) Bus() *bus.Bus[Action, Event] { return c.bus }

// Loop returns the context's scheduler.
func (c *Context) Loop() *loop.Loop { return c.loop }

// Registry returns the container registry.
func (c *Context) Registry() *Registry { return c.registry }

// Logger returns the context's logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Mount registers a surface handle, announces it on the bus, and
// replays any pending dispatches. The surface must already be
// subscribed to show and clear actions, otherwise the replay has no
// recipient.
func (c *Context) Mount(s Surface) {
	c.registry.Register(s)
	c.bus.Emit(ActionDidMount, Event{SurfaceID: s.ID()})
	c.replayQueue()
}

// Unmount announces the surface's departure and removes it from the
// registry. Once the registry is empty, subsequent dispatches queue
// again until a surface mounts.
func (c *Context) Unmount(id string) {
	c.bus.Emit(ActionWillUnmount, Event{SurfaceID: id})
	c.registry.Unregister(id)
}

// UnmountAll announces a bulk teardown and clears the entire registry.
func (c *Context) UnmountAll() {
	c.bus.Emit(ActionWillUnmount, Event{})
	c.registry.UnregisterAll()
}

// replayQueue re-emits every buffered dispatch through the bus in
// original order. The queue is drained to a local slice first so a
// reentrant dispatch during replay starts a fresh buffer instead of
// looping.
func (c *Context) replayQueue() {
	entries := c.queue.drain()
	if len(entries) == 0 {
		return
	}

	for _, e := range entries {
		item := &Item{ID: e.options.ToastID, Content: e.content, Options: e.options}
		c.bus.Emit(e.action, Event{Item: item, ResetTimer: true})
	}
	c.metrics.recordReplayed(len(entries))

	c.logger.Debug("replayed pending notifications", "count", len(entries))
}

// triggerLazyMount consumes the lazy-mount arming flag and invokes the
// mount capability. One-shot: the flag is not re-armed automatically.
func (c *Context) triggerLazyMount() {
	c.mu.Lock()
	if !c.lazyArmed || c.mounter == nil {
		c.mu.Unlock()
		return
	}
	c.lazyArmed = false
	cfg := c.surfaceCfg
	c.mu.Unlock()

	c.logger.Debug("lazy-mounting default surface", "container_id", cfg.ID)
	c.mounter(cfg)
}
