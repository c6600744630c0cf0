package toastify_test

import (
	"testing"
	"time"

	"github.com/go-toastify/toastify"
	"github.com/go-toastify/toastify/pkg/surface"
	"github.com/go-toastify/toastify/pkg/toast"
)

// withFreshDefault swaps in an isolated default context for the test.
func withFreshDefault(t *testing.T) *toastify.Context {
	t.Helper()
	ctx := toast.New()
	toastify.SetDefault(ctx)
	t.Cleanup(func() { toastify.SetDefault(nil) })
	return ctx
}

func TestPackageLevelDispatch(t *testing.T) {
	ctx := withFreshDefault(t)

	s := surface.New(ctx, surface.WithClock(surface.NewFakeClock(time.Unix(0, 0))))
	s.Mount()

	id := toastify.Success("saved", toastify.Options{AutoClose: toastify.AutoCloseDisabled})
	if !toastify.IsActive(id) {
		t.Fatal("notification not active after Show")
	}

	item, ok := s.Find(id)
	if !ok {
		t.Fatal("record missing from the surface")
	}
	if item.Options.Type != toastify.TypeSuccess {
		t.Errorf("expected success type, got %s", item.Options.Type)
	}

	toastify.Update(id, toastify.Options{Type: toastify.TypeError})
	ctx.Loop().Flush()
	item, _ = s.Find(id)
	if item == nil || item.Options.Type != toastify.TypeError {
		t.Error("update not applied through the facade")
	}

	toastify.Dismiss(id)
	if toastify.IsActive(id) {
		t.Error("notification still active after Dismiss")
	}
}

func TestDefaultIsLazyAndReplaceable(t *testing.T) {
	toastify.SetDefault(nil)
	t.Cleanup(func() { toastify.SetDefault(nil) })

	first := toastify.Default()
	if first == nil {
		t.Fatal("Default returned nil")
	}
	if toastify.Default() != first {
		t.Fatal("Default not stable across calls")
	}

	replacement := toast.New()
	toastify.SetDefault(replacement)
	if toastify.Default() != replacement {
		t.Fatal("SetDefault not honored")
	}
}
