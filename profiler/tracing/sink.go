package tracing

// Context receives the zones of one (chip, core) in non-decreasing
// timestamp order.
type Context interface {
	// Calibrate replaces the sync triple used for subsequent zones.
	Calibrate(info SyncInfo)
	PushStart(ev DeviceEvent)
	PushEnd(ev DeviceEvent)
	// Close releases the context. No pushes may follow.
	Close() error
}

// Sink creates tracing contexts.
type Sink interface {
	NewContext(name string, key CoreKey, info SyncInfo) Context
}

// Push forwards an event to ctx according to its phase.
func Push(ctx Context, ev DeviceEvent) {
	switch ev.Phase {
	case Begin:
		ctx.PushStart(ev)
	case End:
		ctx.PushEnd(ev)
	}
}
