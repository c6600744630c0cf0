// Package loop provides the single-threaded task scheduler that the
// notification core runs on. Deferred work (the update tick, timer
// expirations) is posted here instead of running concurrently, which
// preserves the ordering guarantee that a Show followed by an Update in
// the same tick observes the record the Show created.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
)

// DefaultQueueSize is the default capacity of the task queue.
const DefaultQueueSize = 256

// ErrLoopClosed is returned when posting to a closed loop.
var ErrLoopClosed = errors.New("loop: closed")

// Loop executes posted functions in order on a single goroutine.
//
// There are two ways to drive a Loop:
//
//   - Run starts a goroutine-bound pump that executes tasks until the
//     context is cancelled. This is the production mode.
//   - Flush synchronously drains the currently queued tasks on the
//     calling goroutine. This is intended for tests and for embedders
//     that already own an event loop and pump the queue themselves.
//
// Run and Flush must not be used on the same Loop at the same time.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	closed atomic.Bool
	logger *slog.Logger
}

// New creates a Loop with the default queue size.
func New() *Loop {
	return NewSize(DefaultQueueSize)
}

// NewSize creates a Loop with the given queue capacity.
func NewSize(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		tasks:  make(chan func(), size),
		done:   make(chan struct{}),
		logger: slog.Default().With("component", "loop"),
	}
}

// WithLogger sets the logger and returns the loop for chaining.
func (l *Loop) WithLogger(logger *slog.Logger) *Loop {
	if logger != nil {
		l.logger = logger.With("component", "loop")
	}
	return l
}

// Post queues fn to run on the loop. Safe to call from any goroutine.
// If the queue is full the task is discarded with a warning, matching
// the best-effort delivery model of the rest of the core.
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		return nil
	}
	if l.closed.Load() {
		return ErrLoopClosed
	}

	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	default:
		l.logger.Warn("task queue full, discarding task")
		return nil
	}
}

// Run executes tasks until ctx is cancelled or the loop is closed.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
		case <-ctx.Done():
			return
		case <-l.done:
			return
		}
	}
}

// Flush synchronously runs every task queued at the time of the call,
// including tasks posted by the tasks themselves, until the queue is
// empty. Returns the number of tasks executed.
func (l *Loop) Flush() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
			n++
		default:
			return n
		}
	}
}

// Close stops the loop. Pending tasks are discarded.
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	close(l.done)
}

// exec runs a single task, isolating panics so a failing task cannot
// take down the pump.
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panic", "panic", r)
		}
	}()
	fn()
}
