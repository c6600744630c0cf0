package surface

import (
	"time"

	"github.com/go-toastify/toastify/pkg/toast"
)

// State is the lifecycle state of a mounted notification.
type State uint8

const (
	// StateRunning means the autoclose countdown is live (or inert when
	// autoclose is disabled, in which case the record waits for an
	// explicit dismiss).
	StateRunning State = iota

	// StatePaused means the countdown is suspended by hover, focus
	// loss, or an in-flight drag gesture.
	StatePaused

	// StateClosing means the record is on its way out and the renderer
	// is playing the exit animation.
	StateClosing

	// StateClosed means the record has left its surface.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// lifecycle is the per-notification timing state machine. All methods
// must be called with the owning surface's lock held; timer callbacks
// re-enter through the surface, which takes the lock first.
//
// The countdown is remaining-time based: pausing stops the timer and
// subtracts the elapsed slice, resuming schedules the remainder, so
// every paused interval delays closure by exactly its length.
type lifecycle struct {
	clock    Clock
	onExpire func()

	state State

	// pauseReasons counts overlapping pause sources (hover, focus loss,
	// drag). The countdown resumes only when all of them clear.
	pauseReasons int

	// dragging guards against nested drag gestures. The drag holds its
	// own pause reason, so releasing it restores the prior timer state.
	dragging bool

	// Countdown bookkeeping.
	inert     bool // autoclose disabled or controlled progress
	remaining time.Duration
	startedAt time.Time
	timer     Timer

	// Controlled progress, clamped to [0,1].
	controlled bool
	progress   float64
}

// newLifecycle starts the state machine for a freshly shown record.
func newLifecycle(opts toast.Options, clock Clock, onExpire func()) *lifecycle {
	l := &lifecycle{
		clock:    clock,
		onExpire: onExpire,
		state:    StateRunning,
	}
	l.syncOptions(opts)
	if l.inert {
		return l
	}
	l.remaining = opts.AutoClose
	l.startTimer()
	return l
}

// syncOptions refreshes the option-derived fields.
func (l *lifecycle) syncOptions(opts toast.Options) {
	l.controlled = opts.Controlled()
	if l.controlled {
		l.progress = opts.ProgressValue()
	}
	l.inert = !opts.AutoCloseEnabled()
}

// pause suspends the countdown for one more reason.
func (l *lifecycle) pause() {
	if l.state != StateRunning && l.state != StatePaused {
		return
	}
	l.pauseReasons++
	if l.state == StateRunning {
		l.stopTimer()
		l.state = StatePaused
	}
}

// resume releases one pause reason, restarting the countdown when the
// last reason clears.
func (l *lifecycle) resume() {
	if l.state != StatePaused {
		return
	}
	if l.pauseReasons > 0 {
		l.pauseReasons--
	}
	if l.pauseReasons > 0 {
		return
	}
	l.state = StateRunning
	l.startTimer()
}

// beginDrag pauses the countdown for the duration of a drag gesture.
func (l *lifecycle) beginDrag() {
	if l.dragging || l.state == StateClosing || l.state == StateClosed {
		return
	}
	l.dragging = true
	l.pause()
}

// endDrag finishes a drag gesture. Past the removal threshold the
// record closes regardless of timer state; otherwise the prior timer
// state is restored. Reports whether the record should close.
func (l *lifecycle) endDrag(pastThreshold bool) bool {
	if !l.dragging {
		return false
	}
	l.dragging = false

	if pastThreshold {
		l.beginClosing()
		return true
	}
	// Releasing the drag's pause reason restores the prior state: a
	// record paused by hover or focus loss before the drag stays paused.
	l.resume()
	return false
}

// applyUpdate applies an in-place update. The countdown restarts only
// when the update explicitly carried a new autoclose duration
// (restart); otherwise a Closing record stays Closing. Reports whether
// the update drives the record into Closing (controlled progress
// reaching 1).
func (l *lifecycle) applyUpdate(opts toast.Options, restart bool) bool {
	l.syncOptions(opts)

	// Options that turn the countdown inert (controlled progress, or
	// autoclose disabled) cancel a pending timer; a stale timer would
	// otherwise still fire and close the record.
	if l.inert {
		l.stopTimer()
	}

	if restart && opts.AutoCloseEnabled() {
		l.stopTimer()
		l.state = StateRunning
		l.pauseReasons = 0
		l.dragging = false
		l.remaining = opts.AutoClose
		l.startTimer()
	}

	if l.controlled && l.progress >= 1 && l.state != StateClosing && l.state != StateClosed {
		l.beginClosing()
		return true
	}
	return false
}

// beginClosing forces the transition into Closing.
func (l *lifecycle) beginClosing() {
	if l.state == StateClosing || l.state == StateClosed {
		return
	}
	l.stopTimer()
	l.state = StateClosing
}

// completeClosing marks the exit animation as finished.
func (l *lifecycle) completeClosing() {
	l.stopTimer()
	l.state = StateClosed
}

// expire is the timer callback path: the unpaused countdown ran out.
func (l *lifecycle) expire() bool {
	if l.state != StateRunning {
		return false
	}
	l.timer = nil
	l.beginClosing()
	return true
}

// startTimer schedules the remaining countdown.
func (l *lifecycle) startTimer() {
	if l.inert || l.remaining <= 0 {
		return
	}
	l.startedAt = l.clock.Now()
	l.timer = l.clock.AfterFunc(l.remaining, l.onExpire)
}

// stopTimer cancels a pending countdown and banks the elapsed slice.
func (l *lifecycle) stopTimer() {
	if l.timer == nil {
		return
	}
	l.timer.Stop()
	l.timer = nil
	elapsed := l.clock.Now().Sub(l.startedAt)
	l.remaining -= elapsed
	if l.remaining < 0 {
		l.remaining = 0
	}
}
