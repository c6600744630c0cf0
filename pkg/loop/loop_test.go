package loop

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestFlushRunsTasksInOrder(t *testing.T) {
	l := New()

	var got []int
	l.Post(func() { got = append(got, 1) })
	l.Post(func() { got = append(got, 2) })
	l.Post(func() { got = append(got, 3) })

	if n := l.Flush(); n != 3 {
		t.Fatalf("expected 3 tasks executed, got %d", n)
	}
	for i, v := range []int{1, 2, 3} {
		if got[i] != v {
			t.Errorf("task %d: expected %d, got %d", i, v, got[i])
		}
	}
}

func TestFlushRunsTasksPostedByTasks(t *testing.T) {
	l := New()

	ran := false
	l.Post(func() {
		l.Post(func() { ran = true })
	})

	l.Flush()
	if !ran {
		t.Error("task posted during flush did not run")
	}
}

func TestFlushEmptyReturnsZero(t *testing.T) {
	l := New()
	if n := l.Flush(); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
}

func TestPostAfterCloseReturnsError(t *testing.T) {
	l := New()
	l.Close()

	if err := l.Post(func() {}); err != ErrLoopClosed {
		t.Errorf("expected ErrLoopClosed, got %v", err)
	}
}

func TestPostNilIsNoop(t *testing.T) {
	l := New()
	if err := l.Post(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if n := l.Flush(); n != 0 {
		t.Errorf("expected no tasks, got %d", n)
	}
}

func TestQueueFullDiscards(t *testing.T) {
	l := NewSize(1)

	l.Post(func() {})
	// Queue is full; this task is discarded rather than blocking.
	if err := l.Post(func() { t.Error("discarded task ran") }); err != nil {
		t.Errorf("expected nil error on discard, got %v", err)
	}

	if n := l.Flush(); n != 1 {
		t.Errorf("expected 1 task, got %d", n)
	}
}

func TestRunExecutesPostedTasks(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Run(ctx)
	}()

	done := make(chan struct{})
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()
	wg.Wait()
}

func TestPanickingTaskDoesNotStopFlush(t *testing.T) {
	l := New()

	ran := false
	l.Post(func() { panic("boom") })
	l.Post(func() { ran = true })

	l.Flush()
	if !ran {
		t.Error("task after panic did not run")
	}
}
