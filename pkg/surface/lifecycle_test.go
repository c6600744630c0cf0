package surface

import (
	"testing"
	"time"

	"github.com/go-toastify/toastify/pkg/toast"
)

func runningOptions(autoClose time.Duration) toast.Options {
	return toast.Options{
		Type:             toast.TypeDefault,
		AutoClose:        autoClose,
		PauseOnHover:     toast.Bool(true),
		PauseOnFocusLoss: toast.Bool(true),
		Draggable:        toast.Bool(true),
	}
}

func TestLifecycleExpiresAfterDuration(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	expired := false
	l := newLifecycle(runningOptions(5*time.Second), clock, func() { expired = true })

	if l.state != StateRunning {
		t.Fatalf("expected running, got %s", l.state)
	}

	clock.Advance(4999 * time.Millisecond)
	if expired {
		t.Fatal("expired before the autoclose duration elapsed")
	}

	clock.Advance(1 * time.Millisecond)
	if !expired {
		t.Fatal("did not expire at the autoclose duration")
	}
}

func TestLifecycleInertWhenAutoCloseDisabled(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(toast.AutoCloseDisabled), clock, func() {
		t.Fatal("inert lifecycle fired a timer")
	})

	clock.Advance(24 * time.Hour)
	if l.state != StateRunning {
		t.Errorf("expected running, got %s", l.state)
	}
}

func TestLifecyclePauseDelaysExpiry(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	expired := false
	l := newLifecycle(runningOptions(5*time.Second), clock, func() { expired = true })

	clock.Advance(3 * time.Second)
	l.pause()
	if l.state != StatePaused {
		t.Fatalf("expected paused, got %s", l.state)
	}

	// Paused time does not count against the countdown.
	clock.Advance(1 * time.Hour)
	if expired {
		t.Fatal("expired while paused")
	}

	l.resume()
	clock.Advance(1999 * time.Millisecond)
	if expired {
		t.Fatal("expired before the remaining 2s elapsed")
	}
	clock.Advance(1 * time.Millisecond)
	if !expired {
		t.Fatal("did not expire after the remaining time elapsed")
	}
}

func TestLifecycleOverlappingPauseReasons(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(time.Second), clock, func() {})

	l.pause() // hover
	l.pause() // focus loss
	l.resume()
	if l.state != StatePaused {
		t.Fatalf("expected still paused with one reason left, got %s", l.state)
	}
	l.resume()
	if l.state != StateRunning {
		t.Fatalf("expected running after all reasons cleared, got %s", l.state)
	}
}

func TestLifecycleDragRevertRestoresPriorState(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	expired := false
	l := newLifecycle(runningOptions(5*time.Second), clock, func() { expired = true })

	l.beginDrag()
	if l.state != StatePaused {
		t.Fatalf("expected paused during drag, got %s", l.state)
	}
	if closed := l.endDrag(false); closed {
		t.Fatal("released before threshold should not close")
	}
	if l.state != StateRunning {
		t.Fatalf("expected running after release, got %s", l.state)
	}

	// Drag began on an already-paused record: release keeps it paused.
	l.pause()
	l.beginDrag()
	l.endDrag(false)
	if l.state != StatePaused {
		t.Fatalf("expected paused restored, got %s", l.state)
	}
	l.resume()

	clock.Advance(6 * time.Second)
	if !expired {
		t.Fatal("countdown never completed after drag juggling")
	}
}

func TestLifecycleDragPastThresholdCloses(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(5*time.Second), clock, func() {})

	l.beginDrag()
	if closed := l.endDrag(true); !closed {
		t.Fatal("expected close past threshold")
	}
	if l.state != StateClosing {
		t.Fatalf("expected closing, got %s", l.state)
	}
}

func TestLifecycleControlledProgressSuppressesTimer(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	opts := runningOptions(5 * time.Second)
	opts.Progress = toast.Float64(0.3)
	l := newLifecycle(opts, clock, func() {
		t.Fatal("controlled-progress lifecycle fired a timer")
	})

	clock.Advance(24 * time.Hour)
	if l.state != StateRunning {
		t.Errorf("expected running, got %s", l.state)
	}
}

func TestLifecycleUpdateToCompletedProgressCloses(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	opts := runningOptions(5 * time.Second)
	opts.Progress = toast.Float64(0.3)
	l := newLifecycle(opts, clock, func() {})

	done := opts
	done.Progress = toast.Float64(1)
	if !l.applyUpdate(done, false) {
		t.Fatal("expected completed progress to request closing")
	}
	if l.state != StateClosing {
		t.Fatalf("expected closing, got %s", l.state)
	}
}

func TestLifecycleUpdateWhileClosingDoesNotResurrect(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(time.Second), clock, func() {})
	l.beginClosing()

	l.applyUpdate(runningOptions(toast.AutoCloseDisabled), false)
	if l.state != StateClosing {
		t.Fatalf("update without explicit autoclose resurrected: %s", l.state)
	}

	// Explicit new autoclose restarts the countdown.
	expiredAgain := false
	l.onExpire = func() { expiredAgain = true }
	l.applyUpdate(runningOptions(2*time.Second), true)
	if l.state != StateRunning {
		t.Fatalf("expected running after explicit autoclose, got %s", l.state)
	}
	clock.Advance(2 * time.Second)
	if !expiredAgain {
		t.Fatal("restarted countdown never expired")
	}
}

func TestLifecycleExpireOnlyFromRunning(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(time.Second), clock, func() {})
	l.beginClosing()

	if l.expire() {
		t.Fatal("expire from closing should be a no-op")
	}
	if l.state != StateClosing {
		t.Fatalf("expected closing, got %s", l.state)
	}
}

func TestLifecycleUpdateToControlledCancelsTimer(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(5*time.Second), clock, func() {
		t.Fatal("stale autoclose timer fired after update to controlled progress")
	})

	opts := runningOptions(5 * time.Second)
	opts.Progress = toast.Float64(0.3)
	l.applyUpdate(opts, false)

	clock.Advance(24 * time.Hour)
	if l.state != StateRunning {
		t.Errorf("expected running, got %s", l.state)
	}
}

func TestLifecycleUpdateToDisabledCancelsTimer(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))

	l := newLifecycle(runningOptions(5*time.Second), clock, func() {
		t.Fatal("stale autoclose timer fired after autoclose was disabled")
	})

	l.applyUpdate(runningOptions(toast.AutoCloseDisabled), true)

	clock.Advance(24 * time.Hour)
	if l.state != StateRunning {
		t.Errorf("expected running, got %s", l.state)
	}
}
