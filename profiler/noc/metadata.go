// Package noc decodes the 64-bit NoC event metadata that kernels attach to
// TS_DATA profiler packets, and the fabric routing fields of multi-hop sends.
//
// Metadata layout (little-endian byte order of the 64-bit payload):
//
//	byte 7        transfer type (EventType)
//	LocalEvent    byte 0 dst_x, 1 dst_y, 2 mcast_end_x, 3 mcast_end_y (int8),
//	              byte 4 noc type (low nibble) | virtual channel (high nibble),
//	              byte 5 payload size in 32-byte chunks
//	FabricEvent   byte 0 dst_x, 1 dst_y, 2 mcast_end_x, 3 mcast_end_y (int8),
//	              byte 4 routing fields type (FabricPacketType)
//	RoutingFields bytes 0..3 routing fields value (uint32)
package noc

import "strings"

// EventType is the NoC transfer kind.
type EventType uint8

const (
	Undef EventType = iota
	Read
	ReadSetState
	ReadSetTrid
	ReadWithState
	ReadWithStateAndTrid
	ReadBarrierStart
	ReadBarrierEnd
	ReadBarrierWithTrid
	ReadDRAMShardedSetState
	ReadDRAMShardedWithState
	Write
	WriteWithTrid
	WriteInline
	WriteMulticast
	WriteSetState
	WriteWithState
	WriteWithTridSetState
	WriteWithTridWithState
	WriteBarrierStart
	WriteBarrierEnd
	WriteBarrierWithTrid
	WriteFlush
	FullBarrier
	AtomicBarrier
	SemaphoreInc
	SemaphoreWait
	SemaphoreSet
	FabricUnicastWrite
	FabricUnicastInlineWrite
	FabricUnicastAtomicInc
	FabricFusedUnicastAtomicInc
	FabricUnicastScatterWrite
	FabricMulticastWrite
	FabricMulticastInlineWrite
	FabricMulticastAtomicInc
	FabricFusedMulticastAtomicInc
	FabricRoutingFields
	Unsupported
)

var eventTypeNames = []string{
	"UNDEF",
	"READ",
	"READ_SET_STATE",
	"READ_SET_TRID",
	"READ_WITH_STATE",
	"READ_WITH_STATE_AND_TRID",
	"READ_BARRIER_START",
	"READ_BARRIER_END",
	"READ_BARRIER_WITH_TRID",
	"READ_DRAM_SHARDED_SET_STATE",
	"READ_DRAM_SHARDED_WITH_STATE",
	"WRITE_",
	"WRITE_WITH_TRID",
	"WRITE_INLINE",
	"WRITE_MULTICAST",
	"WRITE_SET_STATE",
	"WRITE_WITH_STATE",
	"WRITE_WITH_TRID_SET_STATE",
	"WRITE_WITH_TRID_WITH_STATE",
	"WRITE_BARRIER_START",
	"WRITE_BARRIER_END",
	"WRITE_BARRIER_WITH_TRID",
	"WRITE_FLUSH",
	"FULL_BARRIER",
	"ATOMIC_BARRIER",
	"SEMAPHORE_INC",
	"SEMAPHORE_WAIT",
	"SEMAPHORE_SET",
	"FABRIC_UNICAST_WRITE",
	"FABRIC_UNICAST_INLINE_WRITE",
	"FABRIC_UNICAST_ATOMIC_INC",
	"FABRIC_FUSED_UNICAST_ATOMIC_INC",
	"FABRIC_UNICAST_SCATTER_WRITE",
	"FABRIC_MULTICAST_WRITE",
	"FABRIC_MULTICAST_INLINE_WRITE",
	"FABRIC_MULTICAST_ATOMIC_INC",
	"FABRIC_FUSED_MULTICAST_ATOMIC_INC",
	"FABRIC_ROUTING_FIELDS",
	"UNSUPPORTED",
}

func (t EventType) String() string {
	if int(t) >= len(eventTypeNames) {
		return ""
	}
	return eventTypeNames[t]
}

// ParseEventType is the inverse of EventType.String.
func ParseEventType(s string) (EventType, bool) {
	for i, name := range eventTypeNames {
		if name == s {
			return EventType(i), true
		}
	}
	return Undef, false
}

// IsFabric reports whether t is a fabric send (not the routing-fields companion).
func (t EventType) IsFabric() bool {
	return t >= FabricUnicastWrite && t <= FabricFusedMulticastAtomicInc
}

// IsFabricUnicast reports whether t is a unicast fabric send.
func (t EventType) IsFabricUnicast() bool {
	return t >= FabricUnicastWrite && t <= FabricUnicastScatterWrite
}

// IsFabricName reports whether a serialized type name heads a fabric triplet.
func IsFabricName(s string) bool {
	return strings.HasPrefix(s, "FABRIC_")
}

// NocType selects one of the two NoCs.
type NocType uint8

const (
	NocUndef NocType = iota
	Noc0
	Noc1
)

func (n NocType) String() string {
	switch n {
	case Noc0:
		return "NOC_0"
	case Noc1:
		return "NOC_1"
	case NocUndef:
		return "UNDEF"
	}
	return ""
}

// FabricPacketType is the routing-fields encoding of a fabric send.
type FabricPacketType uint8

const (
	Regular FabricPacketType = iota
	LowLatency
	LowLatencyMesh
)

var fabricPacketTypeNames = []string{"REGULAR", "LOW_LATENCY", "LOW_LATENCY_MESH"}

func (f FabricPacketType) String() string {
	if int(f) >= len(fabricPacketTypeNames) {
		return ""
	}
	return fabricPacketTypeNames[f]
}

// ParseFabricPacketType is the inverse of FabricPacketType.String.
func ParseFabricPacketType(s string) (FabricPacketType, bool) {
	for i, name := range fabricPacketTypeNames {
		if name == s {
			return FabricPacketType(i), true
		}
	}
	return Regular, false
}

// PayloadChunkSize is the granularity of LocalEvent payload sizes.
const PayloadChunkSize = 32

// LocalEvent is a transfer on the core's own NoC.
type LocalEvent struct {
	DstX, DstY           int8
	McastEndX, McastEndY int8
	Noc                  NocType
	VC                   int8
	PayloadChunks        uint8
}

// NumBytes is the payload size rounded up to whole chunks.
func (e LocalEvent) NumBytes() uint32 {
	return uint32(e.PayloadChunks) * PayloadChunkSize
}

// FabricEvent is the head of a fabric send.
type FabricEvent struct {
	DstX, DstY           int8
	McastEndX, McastEndY int8
	RoutingFieldsType    FabricPacketType
}

// RoutingFieldsEvent carries the routing fields of the preceding FabricEvent.
type RoutingFieldsEvent struct {
	Value uint32
}

// Metadata is a decoded TS_DATA payload. Exactly one of Local, Fabric and
// Routing is non-nil.
type Metadata struct {
	Type    EventType
	Local   *LocalEvent
	Fabric  *FabricEvent
	Routing *RoutingFieldsEvent
}

// Decode splits a 64-bit TS_DATA payload into its variant.
func Decode(data uint64) Metadata {
	b := func(i uint) uint8 { return uint8(data >> (8 * i)) }
	md := Metadata{Type: EventType(b(7))}
	switch {
	case md.Type.IsFabric():
		md.Fabric = &FabricEvent{
			DstX:              int8(b(0)),
			DstY:              int8(b(1)),
			McastEndX:         int8(b(2)),
			McastEndY:         int8(b(3)),
			RoutingFieldsType: FabricPacketType(b(4)),
		}
	case md.Type == FabricRoutingFields:
		md.Routing = &RoutingFieldsEvent{Value: uint32(data)}
	default:
		// sign-extend the 4-bit virtual channel
		vc := int8(b(4)) >> 4
		md.Local = &LocalEvent{
			DstX:          int8(b(0)),
			DstY:          int8(b(1)),
			McastEndX:     int8(b(2)),
			McastEndY:     int8(b(3)),
			Noc:           NocType(b(4) & 0x0F),
			VC:            vc,
			PayloadChunks: b(5),
		}
	}
	return md
}

// EncodeLocal packs a LocalEvent payload.
func EncodeLocal(t EventType, e LocalEvent) uint64 {
	return uint64(uint8(e.DstX)) |
		uint64(uint8(e.DstY))<<8 |
		uint64(uint8(e.McastEndX))<<16 |
		uint64(uint8(e.McastEndY))<<24 |
		uint64(uint8(e.Noc)&0x0F|uint8(e.VC)<<4)<<32 |
		uint64(e.PayloadChunks)<<40 |
		uint64(t)<<56
}

// EncodeFabric packs a FabricEvent payload.
func EncodeFabric(t EventType, e FabricEvent) uint64 {
	return uint64(uint8(e.DstX)) |
		uint64(uint8(e.DstY))<<8 |
		uint64(uint8(e.McastEndX))<<16 |
		uint64(uint8(e.McastEndY))<<24 |
		uint64(e.RoutingFieldsType)<<32 |
		uint64(t)<<56
}

// EncodeRoutingFields packs a RoutingFieldsEvent payload.
func EncodeRoutingFields(value uint32) uint64 {
	return uint64(value) | uint64(FabricRoutingFields)<<56
}
