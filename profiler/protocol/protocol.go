// Package protocol holds the bit-exact layout of the on-device profiler
// buffers: control words, packet encoding and buffer geometry.
// This package has no dependencies on profiler/; it stores pure data types.
package protocol

// PacketType is the 3-bit packet kind carried in bits [18:16] of a timer id.
type PacketType uint32

const (
	ZoneStart PacketType = iota
	ZoneEnd
	ZoneTotal
	TSData
	TSEvent
)

var packetTypeNames = map[PacketType]string{
	ZoneStart: "ZONE_START",
	ZoneEnd:   "ZONE_END",
	ZoneTotal: "ZONE_TOTAL",
	TSData:    "TS_DATA",
	TSEvent:   "TS_EVENT",
}

// String returns the firmware enum name, or "" for unknown values.
func (p PacketType) String() string {
	return packetTypeNames[p]
}

// Control buffer word indices.
const (
	HostBufferEndIndexBrEr = iota
	HostBufferEndIndexNc
	HostBufferEndIndexT0
	HostBufferEndIndexT1
	HostBufferEndIndexT2
	DeviceBufferEndIndexBrEr
	DeviceBufferEndIndexNc
	DeviceBufferEndIndexT0
	DeviceBufferEndIndexT1
	DeviceBufferEndIndexT2
	FWResetH
	FWResetL
	DRAMProfilerAddress
	RunCounter
	NocX
	NocY
	FlatID
	CoreCountPerDRAM
	DroppedZones
	ProfilerDone
)

const (
	// ControlVectorSize is the number of u32 words in the per-core control region.
	ControlVectorSize = 32
	// ControlBufferSize is ControlVectorSize in bytes.
	ControlBufferSize = ControlVectorSize * 4

	// MarkerWords is the number of u32 words in one packet.
	MarkerWords = 2

	// MaxRiscPerCore is the RISC count of a compute (Tensix) core.
	MaxRiscPerCore = 5
)

// Word 0 field masks.
const (
	timerIDShift = 12
	timerIDMask  = 0x7FFFF
	timeHMask    = 0xFFF
	packetShift  = 16
	packetMask   = 0x7
	zoneHashMask = 0xFFFF
	riscNumMask  = 0x7
	flatIDShift  = 3
	flatIDMask   = 0xFF
)

// TimerID extracts the 19-bit timer id from packet word 0.
func TimerID(word0 uint32) uint32 {
	return (word0 >> timerIDShift) & timerIDMask
}

// TimeHigh extracts the high 12 bits of the 44-bit cycle timestamp.
func TimeHigh(word0 uint32) uint32 {
	return word0 & timeHMask
}

// PacketTypeOf returns the packet kind encoded in a timer id.
func PacketTypeOf(timerID uint32) PacketType {
	return PacketType((timerID >> packetShift) & packetMask)
}

// ZoneHash returns the 16-bit source location hash of a timer id.
func ZoneHash(timerID uint32) uint16 {
	return uint16(timerID & zoneHashMask)
}

// Timestamp joins the high and low halves of a cycle count.
func Timestamp(timeH, timeL uint32) uint64 {
	return uint64(timeH)<<32 | uint64(timeL)
}

// RunHeader is the packet following a zero pair, identifying the run.
type RunHeader struct {
	RiscNum    uint32
	CoreFlatID uint32
	RunHostID  uint32
}

// DecodeRunHeader splits a run header packet.
func DecodeRunHeader(word0, word1 uint32) RunHeader {
	return RunHeader{
		RiscNum:    word0 & riscNumMask,
		CoreFlatID: (word0 >> flatIDShift) & flatIDMask,
		RunHostID:  word1,
	}
}

// EncodeRunHeader is the inverse of DecodeRunHeader.
func EncodeRunHeader(h RunHeader) (uint32, uint32) {
	return (h.CoreFlatID&flatIDMask)<<flatIDShift | h.RiscNum&riscNumMask, h.RunHostID
}

// EncodePacket builds word 0 and word 1 of a timestamped packet.
func EncodePacket(timerID uint32, timestamp uint64) (uint32, uint32) {
	word0 := (timerID&timerIDMask)<<timerIDShift | uint32(timestamp>>32)&timeHMask
	return word0, uint32(timestamp)
}

// TimerIDFor composes a timer id from a packet type and zone hash.
func TimerIDFor(p PacketType, hash uint16) uint32 {
	return (uint32(p)&packetMask)<<packetShift | uint32(hash)
}

// RiscNames indexes RISC processor names by RISC type. Index 5 is used for
// every processor of a non-compute core.
var RiscNames = [...]string{"BRISC", "NCRISC", "TRISC_0", "TRISC_1", "TRISC_2", "ERISC"}

// ERiscType is the RISC type reported for non-compute cores.
const ERiscType = 5
