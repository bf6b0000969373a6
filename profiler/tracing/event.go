// Package tracing defines the device zone events handed to a tracing sink,
// the host/device sync triple used to calibrate them, and the sinks that
// consume them.
package tracing

import "cmp"

// Phase marks a zone boundary.
type Phase uint8

const (
	Begin Phase = iota
	End
)

func (p Phase) String() string {
	switch p {
	case Begin:
		return "begin"
	case End:
		return "end"
	}
	return ""
}

// DeviceEvent is one zone boundary recorded on a device RISC. It is
// comparable; the full tuple is the identity used for deduplication.
type DeviceEvent struct {
	RunNum    uint32
	ChipID    int
	CoreX     int
	CoreY     int
	Risc      int
	Marker    uint32
	Timestamp uint64
	Line      uint64
	File      string
	ZoneName  string
	Phase     Phase
}

// Compare orders events by timestamp first. Ties are broken over the
// remaining fields so the order is total; at equal timestamps a zone begin
// precedes its end.
func Compare(a, b *DeviceEvent) int {
	if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ChipID, b.ChipID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CoreX, b.CoreX); c != 0 {
		return c
	}
	if c := cmp.Compare(a.CoreY, b.CoreY); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Risc, b.Risc); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Phase, b.Phase); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Marker, b.Marker); c != 0 {
		return c
	}
	if c := cmp.Compare(a.RunNum, b.RunNum); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	if c := cmp.Compare(a.File, b.File); c != 0 {
		return c
	}
	return cmp.Compare(a.ZoneName, b.ZoneName)
}

// Less reports whether a sorts before b.
func Less(a, b *DeviceEvent) bool {
	return Compare(a, b) < 0
}

// CoreKey identifies a tracing context.
type CoreKey struct {
	ChipID int
	X, Y   int
}

// Core returns the context key of the event.
func (e *DeviceEvent) Core() CoreKey {
	return CoreKey{ChipID: e.ChipID, X: e.CoreX, Y: e.CoreY}
}
