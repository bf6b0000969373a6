package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCmdID_String(t *testing.T) {
	assert.Equal(t, "CQ_DISPATCH_CMD_WRITE_LINEAR", CmdWriteLinear.String())
	assert.Equal(t, "CQ_DISPATCH_SET_GO_SIGNAL_NOC_DATA", SetGoSignalNocData.String())
	assert.Equal(t, "", CmdID(999).String())
}

func TestPackedSubtype(t *testing.T) {
	tests := []struct {
		name string
		data uint64
		want string
	}{
		{"default unicast", 0, "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_DEFAULT"},
		{"rta multicast", uint64(PackedWriteTypeRTA) | PackedWriteFlagMcast, "MCAST,CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_RTA"},
		{"launch", uint64(PackedWriteTypeLaunch), "CQ_DISPATCH_CMD_PACKED_WRITE_TYPE_LAUNCH"},
		{"unknown type", 0x40, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackedSubtype(tt.data))
		})
	}
}

func TestPackedWriteLargeType_String(t *testing.T) {
	assert.Equal(t, "CQ_DISPATCH_CMD_PACKED_WRITE_LARGE_TYPE_PROGRAM_BINARIES", PackedWriteLargeTypeProgramBinaries.String())
	assert.Equal(t, "", PackedWriteLargeType(9).String())
}
