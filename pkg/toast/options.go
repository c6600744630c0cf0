package toast

import "time"

// AutoCloseDisabled disables the autoclose countdown. The notification
// then only leaves the surface through an explicit dismiss or through
// controlled progress reaching completion.
const AutoCloseDisabled time.Duration = -1

// DefaultAutoClose is the autoclose duration applied when the caller
// does not supply one.
const DefaultAutoClose = 5 * time.Second

// Options is the recognized notification configuration. Every option is
// enumerated and defaulted here; the dispatcher validates and merges at
// its boundary so surfaces always see a fully resolved Options value.
//
// Pointer fields distinguish "not set" from an explicit false/zero so
// caller options can be merged over defaults and, on Update, over the
// record's previous options.
type Options struct {
	// Type is the notification type tag. Empty resolves to TypeDefault.
	Type Type

	// AutoClose is the countdown before the notification closes itself.
	// Zero means "use the default"; AutoCloseDisabled turns the timer
	// off entirely.
	AutoClose time.Duration

	// CloseButton controls whether the renderer shows a close affordance.
	CloseButton *bool

	// PauseOnHover pauses the countdown while the pointer is over the
	// notification.
	PauseOnHover *bool

	// PauseOnFocusLoss pauses the countdown while the window is not
	// focused.
	PauseOnFocusLoss *bool

	// Draggable enables drag-to-dismiss.
	Draggable *bool

	// Progress switches the notification into controlled-progress mode.
	// The value is clamped to [0,1]; the autoclose timer is suppressed
	// and completion is caller-driven via Done or Update.
	Progress *float64

	// Role is the accessibility role the renderer should apply.
	Role string

	// RTL flags right-to-left content direction.
	RTL bool

	// ToastID is the caller-supplied identifier. Empty means allocate.
	// On Update it addresses a move to a new identifier.
	ToastID ID

	// ContainerID targets a specific surface. Empty targets every
	// mounted surface for Show and the latest surface for Update.
	ContainerID string

	// Render replaces the record's content on Update.
	Render RenderFunc

	// UpdateID is stamped by Update when a record is refreshed in place,
	// signaling the renderer to replay the enter animation. Internal.
	UpdateID ID

	// StaleToastID marks the previous identifier of a record moved to a
	// new identifier, telling the owning surface to retire the original.
	// Internal.
	StaleToastID ID
}

// DefaultOptions returns the baseline options merged under every
// dispatch.
func DefaultOptions() Options {
	return Options{
		Type:             TypeDefault,
		AutoClose:        DefaultAutoClose,
		CloseButton:      Bool(true),
		PauseOnHover:     Bool(true),
		PauseOnFocusLoss: Bool(true),
		Draggable:        Bool(true),
		Role:             "alert",
	}
}

// Bool returns a pointer to v, for populating optional bool fields.
func Bool(v bool) *bool { return &v }

// Float64 returns a pointer to v, for populating Progress.
func Float64(v float64) *float64 { return &v }

// merge returns o with every field the caller set in over overriding
// the corresponding field of o. Internal markers (UpdateID,
// StaleToastID) never merge; the dispatcher stamps them explicitly.
func (o Options) merge(over Options) Options {
	out := o
	if over.Type != "" {
		out.Type = over.Type
	}
	if over.AutoClose != 0 {
		out.AutoClose = over.AutoClose
	}
	if over.CloseButton != nil {
		out.CloseButton = over.CloseButton
	}
	if over.PauseOnHover != nil {
		out.PauseOnHover = over.PauseOnHover
	}
	if over.PauseOnFocusLoss != nil {
		out.PauseOnFocusLoss = over.PauseOnFocusLoss
	}
	if over.Draggable != nil {
		out.Draggable = over.Draggable
	}
	if over.Progress != nil {
		out.Progress = over.Progress
	}
	if over.Role != "" {
		out.Role = over.Role
	}
	if over.RTL {
		out.RTL = true
	}
	if over.ToastID != "" {
		out.ToastID = over.ToastID
	}
	if over.ContainerID != "" {
		out.ContainerID = over.ContainerID
	}
	if over.Render != nil {
		out.Render = over.Render
	}
	out.UpdateID = ""
	out.StaleToastID = ""
	return out
}

// normalize validates the merged options in place: the type tag falls
// back to TypeDefault, any negative autoclose collapses to the disabled
// sentinel, and controlled progress is clamped to [0,1].
func (o *Options) normalize() {
	if o.Type == "" {
		o.Type = TypeDefault
	}
	if o.AutoClose < 0 {
		o.AutoClose = AutoCloseDisabled
	}
	if o.Progress != nil {
		v := *o.Progress
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		o.Progress = &v
	}
}

// AutoCloseEnabled reports whether the autoclose countdown applies.
// Controlled progress suppresses the timer regardless of AutoClose.
func (o Options) AutoCloseEnabled() bool {
	return o.AutoClose > 0 && !o.Controlled()
}

// Controlled reports whether the notification is in controlled-progress
// mode.
func (o Options) Controlled() bool { return o.Progress != nil }

// ProgressValue returns the controlled progress value, clamped to [0,1].
// Zero when not in controlled mode.
func (o Options) ProgressValue() float64 {
	if o.Progress == nil {
		return 0
	}
	v := *o.Progress
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PauseOnHoverEnabled reports the resolved pause-on-hover flag.
func (o Options) PauseOnHoverEnabled() bool {
	return o.PauseOnHover != nil && *o.PauseOnHover
}

// PauseOnFocusLossEnabled reports the resolved pause-on-focus-loss flag.
func (o Options) PauseOnFocusLossEnabled() bool {
	return o.PauseOnFocusLoss != nil && *o.PauseOnFocusLoss
}

// DraggableEnabled reports the resolved draggable flag.
func (o Options) DraggableEnabled() bool {
	return o.Draggable != nil && *o.Draggable
}

// CloseButtonEnabled reports the resolved close-button flag.
func (o Options) CloseButtonEnabled() bool {
	return o.CloseButton != nil && *o.CloseButton
}
