package tracing

import "sync"

// RecordedContext is the in-memory state of one Recorder context.
type RecordedContext struct {
	Name         string
	Key          CoreKey
	Sync         SyncInfo
	Calibrations []SyncInfo
	Events       []DeviceEvent
	Closed       bool
}

// Recorder is a Sink that keeps every context and push in memory.
type Recorder struct {
	mu       sync.Mutex
	Contexts []*RecordedContext
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewContext implements Sink.
func (r *Recorder) NewContext(name string, key CoreKey, info SyncInfo) Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc := &RecordedContext{Name: name, Key: key, Sync: info}
	r.Contexts = append(r.Contexts, rc)
	return &recorderContext{owner: r, rc: rc}
}

// Context returns the recorded context for key, or nil.
func (r *Recorder) Context(key CoreKey) *RecordedContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rc := range r.Contexts {
		if rc.Key == key {
			return rc
		}
	}
	return nil
}

// Events returns every pushed event across contexts in push order per context.
func (r *Recorder) Events() []DeviceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []DeviceEvent
	for _, rc := range r.Contexts {
		all = append(all, rc.Events...)
	}
	return all
}

type recorderContext struct {
	owner *Recorder
	rc    *RecordedContext
}

func (c *recorderContext) Calibrate(info SyncInfo) {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	c.rc.Sync = info
	c.rc.Calibrations = append(c.rc.Calibrations, info)
}

func (c *recorderContext) PushStart(ev DeviceEvent) { c.push(ev) }

func (c *recorderContext) PushEnd(ev DeviceEvent) { c.push(ev) }

func (c *recorderContext) push(ev DeviceEvent) {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	c.rc.Events = append(c.rc.Events, ev)
}

func (c *recorderContext) Close() error {
	c.owner.mu.Lock()
	defer c.owner.mu.Unlock()
	c.rc.Closed = true
	return nil
}
