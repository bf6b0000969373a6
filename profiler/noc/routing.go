package noc

import "fmt"

const (
	startDistanceMask = 0x0F
	rangeShift        = 4
	rangeMask         = 0x0F
)

// RegularStartDistanceAndRange decodes REGULAR routing fields: the low nibble
// is the hop distance of the first write, the next nibble the hop range.
func RegularStartDistanceAndRange(value uint32) (int, int) {
	return int(value & startDistanceMask), int((value >> rangeShift) & rangeMask)
}

// Low-latency routing fields are a sequence of 2-bit hop commands, nearest hop
// in the least significant bits.
const (
	llFieldWidth  = 2
	llFieldMask   = 0b11
	llWriteOnly   = 0b01
	llForwardOnly = 0b10
	llMaxHops     = 16
)

// LowLatencyStartDistanceAndRange decodes LOW_LATENCY routing fields. Leading
// forward-only hops push the start distance out; the following hops with the
// write bit set make up the range.
func LowLatencyStartDistanceAndRange(value uint32) (int, int) {
	startDistance := 1
	hop := 0
	for ; hop < llMaxHops && value&llFieldMask == llForwardOnly; hop++ {
		startDistance++
		value >>= llFieldWidth
	}
	rng := 0
	for ; hop < llMaxHops && value&llWriteOnly != 0; hop++ {
		rng++
		value >>= llFieldWidth
	}
	return startDistance, rng
}

// StartDistanceAndRange dispatches on the routing fields type.
func StartDistanceAndRange(t FabricPacketType, value uint32) (int, int, error) {
	switch t {
	case Regular:
		s, r := RegularStartDistanceAndRange(value)
		return s, r, nil
	case LowLatency:
		s, r := LowLatencyStartDistanceAndRange(value)
		return s, r, nil
	case LowLatencyMesh:
		return 0, 0, fmt.Errorf("noc tracing does not support %s packets", t)
	}
	return 0, 0, fmt.Errorf("unknown routing fields type %d", t)
}

// Router identifies an ethernet router core on a chip.
type Router struct {
	ChipID int
	X, Y   int
}

// RoutingLookup maps physical ethernet router cores to their fabric channel.
type RoutingLookup struct {
	channels map[Router]uint8
}

// NewRoutingLookup returns an empty lookup.
func NewRoutingLookup() *RoutingLookup {
	return &RoutingLookup{channels: make(map[Router]uint8)}
}

// Add registers the fabric channel of a router core.
func (l *RoutingLookup) Add(r Router, channel uint8) {
	l.channels[r] = channel
}

// Channel returns the fabric channel of an ethernet router core. Safe on nil.
func (l *RoutingLookup) Channel(chipID, x, y int) (uint8, bool) {
	if l == nil {
		return 0, false
	}
	ch, ok := l.channels[Router{ChipID: chipID, X: x, Y: y}]
	return ch, ok
}

// Len returns the number of registered routers.
func (l *RoutingLookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.channels)
}
