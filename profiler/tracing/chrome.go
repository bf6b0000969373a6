package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// chromeEvent is one record of the Chrome trace event format.
type chromeEvent struct {
	Name string         `json:"name"`
	Cat  string         `json:"cat,omitempty"`
	Ph   string         `json:"ph"`
	TS   float64        `json:"ts"`
	PID  int            `json:"pid"`
	TID  int            `json:"tid"`
	Args map[string]any `json:"args,omitempty"`
}

type chromeFile struct {
	TraceEvents     []chromeEvent  `json:"traceEvents"`
	DisplayTimeUnit string         `json:"displayTimeUnit"`
	OtherData       map[string]any `json:"otherData,omitempty"`
}

var riscThreadNames = [...]string{"BRISC", "NCRISC", "TRISC_0", "TRISC_1", "TRISC_2", "ERISC"}

// ChromeSink collects zones from every context and writes them as a Chrome
// trace event file (loadable in Perfetto or chrome://tracing) on Flush.
type ChromeSink struct {
	path string

	mu       sync.Mutex
	events   []chromeEvent
	threads  map[int]bool
	contexts int
}

// NewChromeSink returns a sink that writes to path on Flush.
func NewChromeSink(path string) *ChromeSink {
	return &ChromeSink{path: path, threads: make(map[int]bool)}
}

// NewContext implements Sink.
func (s *ChromeSink) NewContext(name string, key CoreKey, info SyncInfo) Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts++
	s.events = append(s.events, chromeEvent{
		Name: "process_name",
		Ph:   "M",
		PID:  key.ChipID,
		Args: map[string]any{"name": fmt.Sprintf("Device %d", key.ChipID)},
	})
	return &chromeContext{sink: s, name: name, key: key, sync: info}
}

// Flush writes every event collected so far.
func (s *ChromeSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating trace directory: %w", err)
		}
	}
	data, err := json.Marshal(chromeFile{
		TraceEvents:     s.events,
		DisplayTimeUnit: "ns",
		OtherData:       map[string]any{"contexts": s.contexts},
	})
	if err != nil {
		return fmt.Errorf("marshaling trace events: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing trace file: %w", err)
	}
	return nil
}

func threadID(key CoreKey, risc int) int {
	return (key.X*100+key.Y)*10 + risc
}

type chromeContext struct {
	sink *ChromeSink
	name string
	key  CoreKey
	sync SyncInfo
}

func (c *chromeContext) Calibrate(info SyncInfo) {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	c.sync = info
}

func (c *chromeContext) PushStart(ev DeviceEvent) { c.push(ev, "B") }

func (c *chromeContext) PushEnd(ev DeviceEvent) { c.push(ev, "E") }

func (c *chromeContext) push(ev DeviceEvent, ph string) {
	c.sink.mu.Lock()
	defer c.sink.mu.Unlock()
	tid := threadID(c.key, ev.Risc)
	if !c.sink.threads[tid] {
		c.sink.threads[tid] = true
		riscName := ""
		if ev.Risc >= 0 && ev.Risc < len(riscThreadNames) {
			riscName = riscThreadNames[ev.Risc]
		}
		c.sink.events = append(c.sink.events, chromeEvent{
			Name: "thread_name",
			Ph:   "M",
			PID:  c.key.ChipID,
			TID:  tid,
			Args: map[string]any{"name": fmt.Sprintf("%s %s", c.name, riscName)},
		})
	}
	c.sink.events = append(c.sink.events, chromeEvent{
		Name: ev.ZoneName,
		Cat:  "device",
		Ph:   ph,
		TS:   c.sync.HostNanos(ev.Timestamp) / 1000,
		PID:  c.key.ChipID,
		TID:  tid,
		Args: map[string]any{"file": ev.File, "line": ev.Line, "run": ev.RunNum},
	})
}

func (c *chromeContext) Close() error {
	return nil
}
