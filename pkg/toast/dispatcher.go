package toast

// Dispatcher facade. These are the public operations application code
// calls; everything funnels through dispatch, which merges caller
// options with the context defaults, resolves the identifier, and
// either emits on the bus or buffers in the pending queue.

// Show displays a notification with the default type (unless the
// options say otherwise) and returns its resolved identifier.
func (c *Context) Show(content any, opts ...Options) ID {
	return c.dispatch("", content, first(opts))
}

// Info shows a notification with TypeInfo unless the caller explicitly
// set a type.
func (c *Context) Info(content any, opts ...Options) ID {
	return c.dispatch(TypeInfo, content, first(opts))
}

// Success shows a notification with TypeSuccess unless the caller
// explicitly set a type.
func (c *Context) Success(content any, opts ...Options) ID {
	return c.dispatch(TypeSuccess, content, first(opts))
}

// Warning shows a notification with TypeWarning unless the caller
// explicitly set a type.
func (c *Context) Warning(content any, opts ...Options) ID {
	return c.dispatch(TypeWarning, content, first(opts))
}

// Error shows a notification with TypeError unless the caller
// explicitly set a type.
func (c *Context) Error(content any, opts ...Options) ID {
	return c.dispatch(TypeError, content, first(opts))
}

// Dismiss removes the notification with the given identifier from
// whichever surface holds it. Dismissing an unknown or already-closed
// identifier is a silent no-op, and nothing is queued when no surface
// is mounted.
func (c *Context) Dismiss(id ID) {
	if c.registry.IsEmpty() {
		return
	}
	c.bus.Emit(ActionClear, Event{ID: id})
	c.metrics.recordDismissed()
}

// DismissAll removes every active notification across all mounted
// surfaces.
func (c *Context) DismissAll() {
	if c.registry.IsEmpty() {
		return
	}
	c.bus.Emit(ActionClear, Event{All: true})
	c.metrics.recordDismissed()
}

// IsActive reports whether any mounted surface currently holds the
// identifier. Always false while no surface is registered.
func (c *Context) IsActive(id ID) bool {
	active := false
	c.registry.ForEach(func(s Surface) bool {
		if s.Contains(id) {
			active = true
			return false
		}
		return true
	})
	return active
}

// Update modifies a live notification in place, or moves it to a new
// identifier when opts.ToastID differs from id.
//
// The work is deferred to the next scheduler tick so an Update issued
// immediately after a Show in the same tick observes the record the
// Show created. If the record does not exist when the tick runs, the
// update is a silent no-op.
func (c *Context) Update(id ID, opts Options) {
	if err := c.loop.Post(func() { c.applyUpdate(id, opts) }); err != nil {
		c.logger.Debug("update dropped", "toast_id", id, "error", err)
	}
}

// Done completes a controlled-progress notification: progress jumps to
// 1 and the record transitions to Closing.
func (c *Context) Done(id ID) {
	c.Update(id, Options{Progress: Float64(1)})
}

// OnChange subscribes to active-count changes. The callback receives
// the surface's current count and its identifier. The returned function
// cancels the subscription.
func (c *Context) OnChange(fn func(count int, surfaceID string)) func() {
	if fn == nil {
		return func() {}
	}
	lid := c.bus.On(ActionChange, func(e Event) {
		fn(e.Count, e.SurfaceID)
	})
	return func() { c.bus.Off(ActionChange, lid) }
}

// Configure arms lazy-mount mode and stores the surface configuration
// used if a surface must be created on demand. The arming is consumed
// by the first dispatch that finds no surface mounted.
func (c *Context) Configure(cfg SurfaceConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lazyArmed = true
	c.surfaceCfg = cfg
}

// dispatch merges, validates, resolves the identifier, and routes the
// record: straight to the bus when a surface is mounted, into the
// pending queue otherwise.
func (c *Context) dispatch(forced Type, content any, o Options) ID {
	merged := c.defaults.merge(o)
	if forced != "" && o.Type == "" {
		merged.Type = forced
	}
	merged.normalize()

	id := ResolveID(o.ToastID)
	merged.ToastID = id

	if c.registry.IsEmpty() {
		c.queue.push(queueEntry{action: ActionShow, content: content, options: merged})
		c.metrics.recordQueued()
		c.logger.Debug("queued notification, no surface mounted",
			"toast_id", id,
			"type", merged.Type)
		c.triggerLazyMount()
		return id
	}

	c.bus.Emit(ActionShow, Event{
		Item:       &Item{ID: id, Content: content, Options: merged},
		ResetTimer: true,
	})
	c.metrics.recordShown(merged.Type)
	return id
}

// applyUpdate runs on the scheduler tick. It re-dispatches the record
// under the effective target identifier with the merged options.
func (c *Context) applyUpdate(id ID, opts Options) {
	surf := c.registry.Lookup(opts.ContainerID)
	if surf == nil {
		return
	}
	old, ok := surf.Find(id)
	if !ok {
		return
	}

	merged := old.Options.merge(opts)

	target := id
	if opts.ToastID != "" {
		target = opts.ToastID
	}
	if target == id {
		// In-place refresh: replay the enter animation.
		merged.UpdateID = NewID()
	} else {
		// Move: the old surface retires the original record.
		merged.StaleToastID = id
	}
	merged.ToastID = target
	merged.normalize()

	content := old.Content
	if opts.Render != nil {
		content = opts.Render
	}

	// The countdown restarts only when the update explicitly supplied
	// a new autoclose duration. An update while Closing must not
	// resurrect the record's timer.
	resetTimer := opts.AutoClose != 0

	c.bus.Emit(ActionShow, Event{
		Item:       &Item{ID: target, Content: content, Options: merged},
		ResetTimer: resetTimer,
	})
	c.metrics.recordUpdated()

	c.logger.Debug("updated notification",
		"toast_id", id,
		"target_id", target)
}

// first returns the first options value, or the zero value.
func first(opts []Options) Options {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options{}
}
