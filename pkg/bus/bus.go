package bus

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// globalListenerID is the source of unique listener ids across all buses.
var globalListenerID uint64

// nextListenerID returns the next unique listener id.
func nextListenerID() uint64 {
	return atomic.AddUint64(&globalListenerID, 1)
}

// listener pairs a callback with its unique id.
type listener[E any] struct {
	id uint64
	fn func(E)
}

// Bus is a synchronous publish/subscribe bus keyed by actions of type K.
// Events of type E are delivered to listeners in registration order.
//
// All methods are safe for concurrent use. Emit does not hold the bus
// lock while invoking listeners, so listeners may register or remove
// other listeners; such changes take effect on the next Emit.
type Bus[K comparable, E any] struct {
	mu        sync.RWMutex
	listeners map[K][]listener[E]
	logger    *slog.Logger
}

// New creates an empty Bus.
func New[K comparable, E any]() *Bus[K, E] {
	return &Bus[K, E]{
		listeners: make(map[K][]listener[E]),
		logger:    slog.Default().With("component", "bus"),
	}
}

// WithLogger sets the logger used for listener panic reports and
// returns the bus for chaining.
func (b *Bus[K, E]) WithLogger(logger *slog.Logger) *Bus[K, E] {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger != nil {
		b.logger = logger.With("component", "bus")
	}
	return b
}

// On registers fn for the given action and returns the listener id
// that can later be passed to Off.
func (b *Bus[K, E]) On(action K, fn func(E)) uint64 {
	if fn == nil {
		return 0
	}

	id := nextListenerID()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[action] = append(b.listeners[action], listener[E]{id: id, fn: fn})
	return id
}

// Off removes the listener with the given id from the action.
// Removing an unknown id is a no-op.
func (b *Bus[K, E]) Off(action K, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.listeners[action]
	for i, l := range subs {
		if l.id == id {
			b.listeners[action] = append(subs[:i], subs[i+1:]...)
			if len(b.listeners[action]) == 0 {
				delete(b.listeners, action)
			}
			return
		}
	}
}

// OffAll removes every listener registered for the action.
func (b *Bus[K, E]) OffAll(action K) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, action)
}

// Emit delivers the event to all listeners registered for the action,
// synchronously and in registration order.
//
// Isolation policy: each listener is invoked inside its own recover, so
// a panicking listener never corrupts the listener list and never blocks
// delivery to the remaining listeners. Panics are logged and swallowed.
func (b *Bus[K, E]) Emit(action K, event E) {
	// Copy before notify so listener mutations don't affect this emit.
	b.mu.RLock()
	subs := make([]listener[E], len(b.listeners[action]))
	copy(subs, b.listeners[action])
	b.mu.RUnlock()

	for _, l := range subs {
		b.invoke(l, event)
	}
}

// ListenerCount returns the number of listeners registered for the action.
func (b *Bus[K, E]) ListenerCount(action K) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[action])
}

// invoke runs a single listener, isolating panics.
func (b *Bus[K, E]) invoke(l listener[E], event E) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("listener panic",
				"listener_id", l.id,
				"panic", r)
		}
	}()
	l.fn(event)
}
