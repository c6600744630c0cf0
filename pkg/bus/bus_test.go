package bus

import (
	"testing"
)

type action string

const (
	actionShow  action = "show"
	actionClear action = "clear"
)

func TestEmitDeliversInRegistrationOrder(t *testing.T) {
	b := New[action, int]()

	var got []int
	b.On(actionShow, func(v int) { got = append(got, v*1) })
	b.On(actionShow, func(v int) { got = append(got, v*2) })
	b.On(actionShow, func(v int) { got = append(got, v*3) })

	b.Emit(actionShow, 10)

	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %d deliveries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delivery %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestEmitUnknownActionIsNoop(t *testing.T) {
	b := New[action, int]()
	b.On(actionShow, func(int) { t.Fatal("listener for other action invoked") })

	b.Emit(actionClear, 1)
}

func TestOffRemovesSingleListener(t *testing.T) {
	b := New[action, int]()

	var first, second int
	id := b.On(actionShow, func(int) { first++ })
	b.On(actionShow, func(int) { second++ })

	b.Emit(actionShow, 0)
	b.Off(actionShow, id)
	b.Emit(actionShow, 0)

	if first != 1 {
		t.Errorf("removed listener: expected 1 call, got %d", first)
	}
	if second != 2 {
		t.Errorf("remaining listener: expected 2 calls, got %d", second)
	}
}

func TestOffUnknownIDIsNoop(t *testing.T) {
	b := New[action, int]()
	b.On(actionShow, func(int) {})

	b.Off(actionShow, 999999)

	if b.ListenerCount(actionShow) != 1 {
		t.Errorf("expected 1 listener, got %d", b.ListenerCount(actionShow))
	}
}

func TestOffAllRemovesEveryListener(t *testing.T) {
	b := New[action, int]()

	calls := 0
	b.On(actionShow, func(int) { calls++ })
	b.On(actionShow, func(int) { calls++ })

	b.OffAll(actionShow)
	b.Emit(actionShow, 0)

	if calls != 0 {
		t.Errorf("expected no calls after OffAll, got %d", calls)
	}
	if b.ListenerCount(actionShow) != 0 {
		t.Errorf("expected 0 listeners, got %d", b.ListenerCount(actionShow))
	}
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	b := New[action, int]()

	var after int
	b.On(actionShow, func(int) { panic("boom") })
	b.On(actionShow, func(int) { after++ })

	b.Emit(actionShow, 0)

	if after != 1 {
		t.Errorf("listener after panic: expected 1 call, got %d", after)
	}

	// The listener list must survive the panic intact.
	b.Emit(actionShow, 0)
	if after != 2 {
		t.Errorf("listener list corrupted after panic: expected 2 calls, got %d", after)
	}
}

func TestRemovalDuringEmitAffectsNextEmit(t *testing.T) {
	b := New[action, int]()

	var secondCalls int
	var secondID uint64
	b.On(actionShow, func(int) { b.Off(actionShow, secondID) })
	secondID = b.On(actionShow, func(int) { secondCalls++ })

	// In-flight emit still delivers to the listener removed by the first.
	b.Emit(actionShow, 0)
	if secondCalls != 1 {
		t.Errorf("in-flight emit: expected 1 call, got %d", secondCalls)
	}

	b.Emit(actionShow, 0)
	if secondCalls != 1 {
		t.Errorf("post-removal emit: expected still 1 call, got %d", secondCalls)
	}
}

func TestListenerIDsAreUnique(t *testing.T) {
	b := New[action, int]()

	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		id := b.On(actionShow, func(int) {})
		if seen[id] {
			t.Fatalf("duplicate listener id %d", id)
		}
		seen[id] = true
	}
}
