// Package toast implements the dispatch core of the notification layer:
// the identifier allocator, the pending queue for pre-mount dispatches,
// the container registry, and the Dispatcher facade that application
// code calls to show, update, and dismiss notifications.
//
// The core is decoupled from rendering. A display surface (see the
// surface package) subscribes to the Context's bus and owns the live
// notification collection; this package only routes records to it.
//
// Everything hangs off an explicitly constructed Context, so tests and
// applications with several independent notification domains build
// their own instead of sharing process state:
//
//	ctx := toast.New()
//	s := surface.New(ctx)
//	s.Mount()
//	id := ctx.Success("Changes saved!")
//	ctx.Dismiss(id)
//
// A process-wide default Context is provided by the root toastify
// package for the common single-app case.
package toast
