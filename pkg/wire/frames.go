package wire

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-toastify/toastify/pkg/toast"
)

// Outbound frame types (server to client).
const (
	FrameShow    = "show"
	FrameClosing = "closing"
	FrameRemove  = "remove"
	FrameChange  = "change"
)

// Inbound frame types (client to server).
const (
	FramePointerEnter  = "pointer_enter"
	FramePointerLeave  = "pointer_leave"
	FrameWindowBlur    = "window_blur"
	FrameWindowFocus   = "window_focus"
	FrameDragStart     = "drag_start"
	FrameDragEnd       = "drag_end"
	FrameCloseComplete = "close_complete"
	FrameDismiss       = "dismiss"
)

// Frame is the wire envelope. Outbound frames carry a toast payload or
// a count; inbound frames carry the identifier the interaction targets.
type Frame struct {
	Type    string        `json:"type"`
	ToastID toast.ID      `json:"toastId,omitempty"`
	Toast   *ToastPayload `json:"toast,omitempty"`
	Count   int           `json:"count,omitempty"`

	// PastThreshold qualifies drag_end: true means the gesture crossed
	// the removal threshold.
	PastThreshold bool `json:"pastThreshold,omitempty"`
}

// ToastPayload is the JSON shape of a notification record.
type ToastPayload struct {
	ID          toast.ID `json:"id"`
	Content     any      `json:"content"`
	Type        string   `json:"notificationType"`
	AutoCloseMS int64    `json:"autoClose"`
	CloseButton bool     `json:"closeButton"`
	Draggable   bool     `json:"draggable"`
	Role        string   `json:"role"`
	RTL         bool     `json:"rtl,omitempty"`
	Progress    *float64 `json:"progress,omitempty"`
	UpdateID    toast.ID `json:"updateId,omitempty"`
}

// payloadFor flattens a record into its wire shape. Render functions
// are materialized here; the wire carries values, not callbacks.
func payloadFor(item *toast.Item) *ToastPayload {
	content := item.Content
	if rf, ok := content.(toast.RenderFunc); ok && rf != nil {
		content = rf()
	}
	if content != nil {
		// Anything the client cannot decode as JSON degrades to text.
		if _, err := json.Marshal(content); err != nil {
			content = fmt.Sprint(content)
		}
	}

	o := item.Options
	autoClose := int64(-1)
	if o.AutoClose > 0 {
		autoClose = o.AutoClose.Milliseconds()
	}

	p := &ToastPayload{
		ID:          item.ID,
		Content:     content,
		Type:        string(o.Type),
		AutoCloseMS: autoClose,
		CloseButton: o.CloseButtonEnabled(),
		Draggable:   o.DraggableEnabled(),
		Role:        o.Role,
		RTL:         o.RTL,
		UpdateID:    o.UpdateID,
	}
	if o.Controlled() {
		v := o.ProgressValue()
		p.Progress = &v
	}
	return p
}

// durationFromMS converts a client-supplied autoclose value back into
// the option sentinel space: negative disables, zero means default.
func durationFromMS(ms int64) time.Duration {
	if ms < 0 {
		return toast.AutoCloseDisabled
	}
	return time.Duration(ms) * time.Millisecond
}
