// Package toastify provides the public API for the toastify
// notification core.
//
// This is the recommended import for most applications:
//
//	import "github.com/go-toastify/toastify"
//
// Usage:
//
//	id := toastify.Success("Item saved!")
//	toastify.Update(id, toastify.Options{Type: toastify.TypeInfo})
//	toastify.Dismiss(id)
//
// The package-level functions operate on a process-wide default
// dispatch context. Applications that need isolation (several
// independent notification domains, or per-test contexts) construct
// their own with toast.New and call its methods directly; the
// package-level layer is a convenience over exactly that.
package toastify

import (
	"sync"

	"github.com/go-toastify/toastify/pkg/toast"
)

// =============================================================================
// Re-exports (pkg/toast exposed at the root)
// =============================================================================

// Context is an isolated dispatch context. See toast.New.
type Context = toast.Context

// ID identifies a notification.
type ID = toast.ID

// Options is the notification configuration.
type Options = toast.Options

// Type is the notification type tag.
type Type = toast.Type

// Item is a dispatched notification record.
type Item = toast.Item

// SurfaceConfig configures a lazily mounted display surface.
type SurfaceConfig = toast.SurfaceConfig

const (
	TypeDefault = toast.TypeDefault
	TypeInfo    = toast.TypeInfo
	TypeSuccess = toast.TypeSuccess
	TypeWarning = toast.TypeWarning
	TypeError   = toast.TypeError
)

// AutoCloseDisabled disables the autoclose countdown.
const AutoCloseDisabled = toast.AutoCloseDisabled

// DefaultAutoClose is the countdown applied when none is supplied.
const DefaultAutoClose = toast.DefaultAutoClose

// Bool populates optional bool option fields.
var Bool = toast.Bool

// Float64 populates the Progress option field.
var Float64 = toast.Float64

// NewContext creates an isolated dispatch context.
var NewContext = toast.New

// =============================================================================
// Default context
// =============================================================================

var (
	defaultMu  sync.RWMutex
	defaultCtx *toast.Context
)

// Default returns the process-wide dispatch context, creating it on
// first use.
func Default() *Context {
	defaultMu.RLock()
	c := defaultCtx
	defaultMu.RUnlock()
	if c != nil {
		return c
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCtx == nil {
		defaultCtx = toast.New()
	}
	return defaultCtx
}

// SetDefault replaces the process-wide dispatch context. The entry
// point calls this once during startup when the default context needs
// options (logger, metrics, mounter); nil resets to lazy creation.
func SetDefault(c *Context) {
	defaultMu.Lock()
	defaultCtx = c
	defaultMu.Unlock()
}

// =============================================================================
// Dispatch facade over the default context
// =============================================================================

// Show displays a notification and returns its identifier.
func Show(content any, opts ...Options) ID { return Default().Show(content, opts...) }

// Info displays an informational notification.
func Info(content any, opts ...Options) ID { return Default().Info(content, opts...) }

// Success displays a success notification.
func Success(content any, opts ...Options) ID { return Default().Success(content, opts...) }

// Warning displays a warning notification.
func Warning(content any, opts ...Options) ID { return Default().Warning(content, opts...) }

// Error displays an error notification.
func Error(content any, opts ...Options) ID { return Default().Error(content, opts...) }

// Dismiss removes the notification with the given identifier.
func Dismiss(id ID) { Default().Dismiss(id) }

// DismissAll removes every active notification.
func DismissAll() { Default().DismissAll() }

// IsActive reports whether any mounted surface holds the identifier.
func IsActive(id ID) bool { return Default().IsActive(id) }

// Update modifies a live notification on the next scheduler tick.
func Update(id ID, opts Options) { Default().Update(id, opts) }

// Done completes a controlled-progress notification.
func Done(id ID) { Default().Done(id) }

// OnChange subscribes to active-count changes. The returned function
// cancels the subscription.
func OnChange(fn func(count int, surfaceID string)) func() { return Default().OnChange(fn) }

// Configure arms lazy-mount mode on the default context.
func Configure(cfg SurfaceConfig) { Default().Configure(cfg) }
