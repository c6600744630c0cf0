package toast

// ID identifies a notification within a display surface. IDs are stable
// across a notification's lifetime; the only way to reuse one is the
// explicit move addressing of Update.
type ID string

// Type represents the toast notification type.
type Type string

const (
	TypeDefault Type = "default"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Action names the bus events that connect the dispatcher to surfaces.
type Action uint8

const (
	// ActionShow carries a new or updated notification record.
	ActionShow Action = iota + 1

	// ActionClear requests removal of one record (Event.ID) or all
	// records (Event.All).
	ActionClear

	// ActionDidMount announces that a surface registered.
	ActionDidMount

	// ActionWillUnmount announces that a surface is about to unregister.
	ActionWillUnmount

	// ActionChange reports a surface's active-notification count.
	ActionChange
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionShow:
		return "show"
	case ActionClear:
		return "clear"
	case ActionDidMount:
		return "surface-mounted"
	case ActionWillUnmount:
		return "surface-will-unmount"
	case ActionChange:
		return "change"
	default:
		return "unknown"
	}
}

// Event is the payload delivered on the bus. Which fields are populated
// depends on the action.
type Event struct {
	// Item is the notification record (ActionShow).
	Item *Item

	// ResetTimer tells the surface to (re)start the autoclose countdown
	// for the record. True for fresh shows; for updates, true only when
	// the caller explicitly supplied a new autoclose duration.
	ResetTimer bool

	// ID targets a single record (ActionClear).
	ID ID

	// All marks a clear-everything request (ActionClear).
	All bool

	// SurfaceID names the surface (ActionDidMount, ActionWillUnmount,
	// ActionChange).
	SurfaceID string

	// Count is the surface's active-record count (ActionChange).
	Count int
}

// RenderFunc produces the content for a notification at render time.
// It can be passed as content to Show or as Options.Render on Update.
type RenderFunc func() any

// Item is the notification record: an identifier, an opaque content
// payload (text, a structured value, or a RenderFunc), and the merged
// options. The display surface holding the Item owns it; lifecycle
// bookkeeping mutates only derived runtime state, never identity.
type Item struct {
	ID      ID
	Content any
	Options Options
}

// Surface is the handle a display surface registers with the container
// registry. It exposes the surface's identity and a view of its live
// notification collection.
type Surface interface {
	// ID returns the surface identifier.
	ID() string

	// Contains reports whether the surface's collection holds id.
	Contains(id ID) bool

	// Find returns the record for id, if present.
	Find(id ID) (*Item, bool)

	// Count returns the number of active records.
	Count() int
}

// SurfaceConfig is the stored configuration for a surface created on
// demand in lazy-mount mode.
type SurfaceConfig struct {
	// ID is the surface identifier. Empty means DefaultContainerID.
	ID string

	// DefaultOptions are per-surface option defaults applied by the
	// mounted surface's renderer.
	DefaultOptions Options
}

// MountFunc is the capability, provided by the rendering collaborator,
// to instantiate and mount a display surface for the given config.
type MountFunc func(cfg SurfaceConfig)
