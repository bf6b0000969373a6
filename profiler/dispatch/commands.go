// Package dispatch names the command-queue dispatcher commands that dispatch
// firmware reports through profiler data packets.
package dispatch

// CmdID is the dispatcher command id.
type CmdID uint64

const (
	CmdIllegal CmdID = iota
	CmdWriteLinear
	CmdWriteLinearH
	CmdWriteLinearHHost
	CmdWritePaged
	CmdWritePacked
	CmdWritePackedLarge
	CmdWait
	CmdSink
	CmdDebug
	CmdDelay
	CmdExecBufEnd
	CmdSetWriteOffset
	CmdTerminate
	CmdSendGoSignal
	NotifySubordinateGoSignal
	SetNumWorkerSems
	SetGoSignalNocData
)

var cmdNames = []string{
	"CQ_DISPATCH_CMD_ILLEGAL",
	"CQ_DISPATCH_CMD_WRITE_LINEAR",
	"CQ_DISPATCH_CMD_WRITE_LINEAR_H",
	"CQ_DISPATCH_CMD_WRITE_LINEAR_H_HOST",
	"CQ_DISPATCH_CMD_WRITE_PAGED",
	"CQ_DISPATCH_CMD_WRITE_PACKED",
	"CQ_DISPATCH_CMD_WRITE_PACKED_LARGE",
	"CQ_DISPATCH_CMD_WAIT",
	"CQ_DISPATCH_CMD_SINK",
	"CQ_DISPATCH_CMD_DEBUG",
	"CQ_DISPATCH_CMD_DELAY",
	"CQ_DISPATCH_CMD_EXEC_BUF_END",
	"CQ_DISPATCH_CMD_SET_WRITE_OFFSET",
	"CQ_DISPATCH_CMD_TERMINATE",
	"CQ_DISPATCH_CMD_SEND_GO_SIGNAL",
	"CQ_DISPATCH_NOTIFY_SUBORDINATE_GO_SIGNAL",
	"CQ_DISPATCH_SET_NUM_WORKER_SEMS",
	"CQ_DISPATCH_SET_GO_SIGNAL_NOC_DATA",
}

// String returns the enum name, or "" when the id is out of range.
func (c CmdID) String() string {
	if c >= CmdID(len(cmdNames)) {
		return ""
	}
	return cmdNames[c]
}

// PackedWriteFlagMcast marks a packed write as multicast.
const PackedWriteFlagMcast = 0x01

// PackedWriteTypeShift is the bit position of the packed write type.
const PackedWriteTypeShift = 1

// PackedWriteType classifies CQ_DISPATCH_CMD_WRITE_PACKED payloads.
type PackedWriteType uint64

const (
	PackedWriteTypeDefault PackedWriteType = 0 << PackedWriteTypeShift
	PackedWriteTypeRTA     PackedWriteType = 1 << PackedWriteTypeShift
	PackedWriteTypeLaunch  PackedWriteType = 2 << PackedWriteTypeShift
	PackedWriteTypeSems    PackedWriteType = 3 << PackedWriteTypeShift
	PackedWriteTypeEvent   PackedWriteType = 4 << PackedWriteTypeShift
)

var packedWriteTypeNames = map[PackedWriteType]string{
	PackedWriteTypeDefault: "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_DEFAULT",
	PackedWriteTypeRTA:     "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_RTA",
	PackedWriteTypeLaunch:  "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_LAUNCH",
	PackedWriteTypeSems:    "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_SEMS",
	PackedWriteTypeEvent:   "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_EVENT",
}

func (t PackedWriteType) String() string {
	return packedWriteTypeNames[t]
}

// PackedWriteLargeType classifies CQ_DISPATCH_CMD_WRITE_PACKED_LARGE payloads.
type PackedWriteLargeType uint64

const (
	PackedWriteLargeTypeUnknown PackedWriteLargeType = iota
	PackedWriteLargeTypeCBsSemsCRTAs
	PackedWriteLargeTypeProgramBinaries
)

var packedWriteLargeTypeNames = map[PackedWriteLargeType]string{
	PackedWriteLargeTypeUnknown:         "CQ_DISPATCH_CMD_PACKED_WRITE_LARGE_TYPE_UNKNOWN",
	PackedWriteLargeTypeCBsSemsCRTAs:    "CQ_DISPATCH_CMD_PACKED_WRITE_LARGE_TYPE_CBS_SEMS_CRTAS",
	PackedWriteLargeTypeProgramBinaries: "CQ_DISPATCH_CMD_PACKED_WRITE_LARGE_TYPE_PROGRAM_BINARIES",
}

func (t PackedWriteLargeType) String() string {
	return packedWriteLargeTypeNames[t]
}

// PackedSubtype renders the subtype of a packed write payload, prefixed with
// "MCAST," when the multicast flag is set.
func PackedSubtype(data uint64) string {
	prefix := ""
	if data&PackedWriteFlagMcast != 0 {
		prefix = "MCAST,"
	}
	return prefix + PackedWriteType((data>>1)<<PackedWriteTypeShift).String()
}
