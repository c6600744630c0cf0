// Package surface implements the reactive display surface: the mounted
// region that owns a collection of active notifications, subscribes to
// the dispatch context's bus, and runs each notification's timing state
// machine (autoclose countdown, pause/resume, controlled progress,
// drag-to-dismiss, close sequencing).
//
// Rendering is delegated to the embedding collaborator through Hooks:
// the surface tells the renderer what appeared, what is closing, and
// what left; the renderer reports animation completion and pointer,
// focus, and drag interactions back through the surface's methods.
package surface

import (
	"log/slog"
	"sync"

	"github.com/go-toastify/toastify/pkg/toast"
)

// Hooks are the rendering collaborator's callbacks. All hooks are
// optional; without OnClosing the exit animation is skipped and closing
// records are removed immediately.
type Hooks struct {
	// OnShow fires when a record enters the collection or is refreshed
	// in place (Options.UpdateID set).
	OnShow func(item *toast.Item)

	// OnClosing fires when a record transitions to Closing. The
	// renderer plays the exit animation and then calls CloseComplete.
	OnClosing func(item *toast.Item)

	// OnRemove fires after a record has left the collection.
	OnRemove func(item *toast.Item)
}

// Option configures a Surface.
type Option func(*Surface)

// WithID sets the surface identifier. Empty defaults to
// toast.DefaultContainerID.
func WithID(id string) Option {
	return func(s *Surface) { s.id = id }
}

// WithClock substitutes the timer clock. Tests use a FakeClock.
func WithClock(clock Clock) Option {
	return func(s *Surface) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger. Defaults to the context's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Surface) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks sets the renderer callbacks.
func WithHooks(hooks Hooks) Option {
	return func(s *Surface) { s.hooks = hooks }
}

// entry pairs a record with its lifecycle state machine.
type entry struct {
	item *toast.Item
	life *lifecycle
}

// subscription remembers a bus listener for removal on unmount.
type subscription struct {
	action toast.Action
	id     uint64
}

// Surface is a mounted display surface. It implements toast.Surface.
type Surface struct {
	id     string
	ctx    *toast.Context
	clock  Clock
	logger *slog.Logger
	hooks  Hooks

	mu      sync.Mutex
	order   []toast.ID
	entries map[toast.ID]*entry

	// mountMu serializes Mount and Unmount end to end, including the
	// bus subscriptions and registry calls, so a mount cannot interleave
	// with a concurrent unmount and strand a registration. It guards
	// mounted and subs. Collection handlers take only s.mu, never
	// mountMu, so holding it across ctx.Mount's replay is safe.
	mountMu sync.Mutex
	subs    []subscription
	mounted bool
}

// New creates a surface bound to the dispatch context. The surface is
// inert until Mount is called.
func New(ctx *toast.Context, opts ...Option) *Surface {
	s := &Surface{
		id:      toast.DefaultContainerID,
		ctx:     ctx,
		clock:   SystemClock(),
		logger:  ctx.Logger(),
		entries: make(map[toast.ID]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = toast.DefaultContainerID
	}
	s.logger = s.logger.With("component", "surface", "container_id", s.id)
	return s
}

// ID returns the surface identifier.
func (s *Surface) ID() string { return s.id }

// Contains reports whether the collection holds id.
func (s *Surface) Contains(id toast.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// Find returns the record for id, if present.
func (s *Surface) Find(id toast.ID) (*toast.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	en, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return en.item, true
}

// Count returns the number of active records.
func (s *Surface) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Items returns the active records in display order.
func (s *Surface) Items() []*toast.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*toast.Item, 0, len(s.order))
	for _, id := range s.order {
		if en, ok := s.entries[id]; ok {
			items = append(items, en.item)
		}
	}
	return items
}

// State returns the lifecycle state for id. StateClosed for unknown
// identifiers, since a missing record has by definition left the
// surface.
func (s *Surface) State(id toast.ID) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	en, ok := s.entries[id]
	if !ok {
		return StateClosed
	}
	return en.life.state
}

// Mount subscribes to the bus, registers with the container registry,
// and triggers replay of any dispatches buffered before a surface
// existed. Mounting twice is a no-op.
func (s *Surface) Mount() {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if s.mounted {
		return
	}

	// Subscribe before registering: registration replays the pending
	// queue and those events need a recipient.
	b := s.ctx.Bus()
	s.subs = []subscription{
		{toast.ActionShow, b.On(toast.ActionShow, s.handleShow)},
		{toast.ActionClear, b.On(toast.ActionClear, s.handleClear)},
	}
	s.mounted = true

	s.ctx.Mount(s)

	s.logger.Debug("surface mounted")
}

// Unmount unsubscribes from the bus, unregisters, and destroys the
// collection along with its timers.
func (s *Surface) Unmount() {
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if !s.mounted {
		return
	}
	s.mounted = false
	subs := s.subs
	s.subs = nil

	s.ctx.Unmount(s.id)

	b := s.ctx.Bus()
	for _, sub := range subs {
		b.Off(sub.action, sub.id)
	}

	s.mu.Lock()
	for _, en := range s.entries {
		en.life.completeClosing()
	}
	s.entries = make(map[toast.ID]*entry)
	s.order = nil
	s.mu.Unlock()

	s.logger.Debug("surface unmounted")
}

// =============================================================================
// Bus handlers
// =============================================================================

// handleShow inserts a new record or applies an update-in-place /
// move, honoring StaleToastID and UpdateID semantics.
func (s *Surface) handleShow(e toast.Event) {
	item := e.Item
	if item == nil {
		return
	}
	// Scope: untargeted records go to every surface; targeted records
	// only to the matching one.
	if cid := item.Options.ContainerID; cid != "" && cid != s.id {
		return
	}

	s.mu.Lock()
	before := len(s.entries)

	var closing, removed []*toast.Item

	// A move retires the record under its previous identifier.
	if stale := item.Options.StaleToastID; stale != "" {
		if en, ok := s.entries[stale]; ok {
			en.life.completeClosing()
			s.removeLocked(stale)
			removed = append(removed, en.item)
		}
	}

	if en, ok := s.entries[item.ID]; ok {
		// Update in place: same identity, new record contents.
		en.item = item
		if en.life.applyUpdate(item.Options, e.ResetTimer) {
			closing = append(closing, item)
		}
	} else {
		en := &entry{item: item}
		en.life = newLifecycle(item.Options, s.clock, s.expireFunc(item.ID))
		s.entries[item.ID] = en
		s.order = append(s.order, item.ID)

		// A record born with completed controlled progress closes as
		// soon as the caller says so; creation itself never closes it.
	}

	count := len(s.entries)
	changed := count != before
	s.mu.Unlock()

	if s.hooks.OnShow != nil {
		s.hooks.OnShow(item)
	}
	for _, it := range removed {
		if s.hooks.OnRemove != nil {
			s.hooks.OnRemove(it)
		}
	}
	for _, it := range closing {
		s.finishClosing(it)
	}
	if changed {
		s.emitChange(count)
	}
}

// handleClear removes one record or every record.
func (s *Surface) handleClear(e toast.Event) {
	if e.All {
		s.mu.Lock()
		ids := make([]toast.ID, len(s.order))
		copy(ids, s.order)
		s.mu.Unlock()
		for _, id := range ids {
			s.startClose(id)
		}
		return
	}
	s.startClose(e.ID)
}

// =============================================================================
// Close sequencing
// =============================================================================

// startClose transitions a record into Closing and hands it to the
// renderer's exit animation, or removes it immediately when no
// OnClosing hook is installed.
func (s *Surface) startClose(id toast.ID) {
	s.mu.Lock()
	en, ok := s.entries[id]
	if !ok || en.life.state == StateClosing || en.life.state == StateClosed {
		s.mu.Unlock()
		return
	}
	en.life.beginClosing()
	item := en.item
	s.mu.Unlock()

	s.finishClosing(item)
}

// finishClosing hands a record that just entered Closing to the
// renderer's exit animation, or completes the close immediately when no
// OnClosing hook is installed.
func (s *Surface) finishClosing(item *toast.Item) {
	if s.hooks.OnClosing != nil {
		s.hooks.OnClosing(item)
		return
	}
	s.CloseComplete(item.ID)
}

// CloseComplete is the renderer's signal that the exit animation for id
// finished. The record transitions to Closed and leaves the collection;
// a change event reports the new count.
func (s *Surface) CloseComplete(id toast.ID) {
	s.mu.Lock()
	en, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	en.life.completeClosing()
	s.removeLocked(id)
	count := len(s.entries)
	s.mu.Unlock()

	if s.hooks.OnRemove != nil {
		s.hooks.OnRemove(en.item)
	}
	s.emitChange(count)
}

// expireFunc builds the timer callback for a record. Expiry can fire on
// a timer goroutine; it re-enters through the surface lock and only
// then decides whether the countdown is still live.
func (s *Surface) expireFunc(id toast.ID) func() {
	return func() {
		s.mu.Lock()
		en, ok := s.entries[id]
		if !ok || !en.life.expire() {
			s.mu.Unlock()
			return
		}
		item := en.item
		s.mu.Unlock()

		s.finishClosing(item)
	}
}

// =============================================================================
// Interaction API (called by the rendering collaborator)
// =============================================================================

// PointerEnter pauses the countdown for id when pause-on-hover is
// enabled.
func (s *Surface) PointerEnter(id toast.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if en, ok := s.entries[id]; ok && en.item.Options.PauseOnHoverEnabled() {
		en.life.pause()
	}
}

// PointerLeave resumes the countdown paused by PointerEnter.
func (s *Surface) PointerLeave(id toast.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if en, ok := s.entries[id]; ok && en.item.Options.PauseOnHoverEnabled() {
		en.life.resume()
	}
}

// WindowBlur pauses every record with pause-on-focus-loss enabled.
func (s *Surface) WindowBlur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, en := range s.entries {
		if en.item.Options.PauseOnFocusLossEnabled() {
			en.life.pause()
		}
	}
}

// WindowFocus resumes the records paused by WindowBlur.
func (s *Surface) WindowFocus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, en := range s.entries {
		if en.item.Options.PauseOnFocusLossEnabled() {
			en.life.resume()
		}
	}
}

// BeginDrag starts a drag gesture on a draggable record, pausing its
// countdown.
func (s *Surface) BeginDrag(id toast.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if en, ok := s.entries[id]; ok && en.item.Options.DraggableEnabled() {
		en.life.beginDrag()
	}
}

// EndDrag finishes a drag gesture. Past the removal threshold the
// record closes regardless of its timer state; otherwise the prior
// timer state is restored.
func (s *Surface) EndDrag(id toast.ID, pastThreshold bool) {
	s.mu.Lock()
	en, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	if !en.item.Options.DraggableEnabled() {
		s.mu.Unlock()
		return
	}
	closed := en.life.endDrag(pastThreshold)
	item := en.item
	s.mu.Unlock()

	if !closed {
		return
	}
	s.finishClosing(item)
}

// =============================================================================
// Internals
// =============================================================================

// removeLocked drops a record from the collection. Caller holds s.mu.
func (s *Surface) removeLocked(id toast.ID) {
	delete(s.entries, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// emitChange reports the surface's active count on the bus.
func (s *Surface) emitChange(count int) {
	s.ctx.Bus().Emit(toast.ActionChange, toast.Event{
		SurfaceID: s.id,
		Count:     count,
	})
}
