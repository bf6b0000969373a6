package noctrace

import (
	"strings"

	"github.com/devprof/devprof/profiler/noc"
	"github.com/devprof/devprof/profiler/tracing"
)

// CoordMapper translates a core coordinate of the traced chip to its
// physical location.
type CoordMapper func(x, y int) (int, int)

func identity(x, y int) (int, int) { return x, y }

// Source is the packet context shared by every record.
type Source struct {
	RunHostID uint32
	OpName    string
	Proc      string
	DeviceID  int
	SX, SY    int
	Timestamp uint64
}

func (s Source) event() Event {
	return Event{
		RunHostID: s.RunHostID,
		OpName:    s.OpName,
		Proc:      s.Proc,
		SX:        s.SX,
		SY:        s.SY,
		Timestamp: s.Timestamp,
	}
}

// IsKernelZone reports whether a zone bounds kernel execution.
func IsKernelZone(zone string) bool {
	return strings.HasPrefix(zone, "TRUE-KERNEL-END") || strings.HasSuffix(zone, "-KERNEL")
}

// KernelZone returns the record of a kernel zone boundary. Only the data
// movement processors are traced.
func KernelZone(src Source, zone string, phase tracing.Phase) (Event, bool) {
	if src.Proc != "BRISC" && src.Proc != "NCRISC" {
		return Event{}, false
	}
	if !IsKernelZone(zone) {
		return Event{}, false
	}
	ev := src.event()
	ev.Zone = zone
	ev.ZonePhase = phase.String()
	return ev, true
}

// FromMetadata returns the record of a NoC event packet payload.
func FromMetadata(src Source, data uint64, mapper CoordMapper) Event {
	if mapper == nil {
		mapper = identity
	}
	md := noc.Decode(data)
	ev := src.event()
	switch {
	case md.Local != nil:
		local := md.Local
		ev.Noc = local.Noc.String()
		ev.VC = ptr(int(local.VC))
		ev.SrcDeviceID = ptr(src.DeviceID)
		ev.NumBytes = ptr(local.NumBytes())
		ev.Type = md.Type.String()
		switch {
		case local.DstX == -1 || local.DstY == -1 || md.Type == noc.ReadWithState || md.Type == noc.WriteWithState:
			// no meaningful destination
		case md.Type == noc.WriteMulticast:
			sx, sy := mapper(int(local.DstX), int(local.DstY))
			ex, ey := mapper(int(local.McastEndX), int(local.McastEndY))
			ev.SetMcast(sx, sy, ex, ey)
		default:
			ev.SetDest(mapper(int(local.DstX), int(local.DstY)))
		}
	case md.Fabric != nil:
		fabric := md.Fabric
		ev.Type = md.Type.String()
		ev.RoutingFieldsType = fabric.RoutingFieldsType.String()
		if md.Type == noc.FabricUnicastScatterWrite {
			ev.ScatterAddressIndex = ptr(int(fabric.McastEndX))
			ev.ScatterTotalAddresses = ptr(int(fabric.McastEndY))
		}
		if md.Type.IsFabricUnicast() {
			ev.SetDest(mapper(int(fabric.DstX), int(fabric.DstY)))
		} else {
			sx, sy := mapper(int(fabric.DstX), int(fabric.DstY))
			ex, ey := mapper(int(fabric.McastEndX), int(fabric.McastEndY))
			ev.SetMcast(sx, sy, ex, ey)
		}
	case md.Routing != nil:
		ev.RoutingFieldsValue = ptr(md.Routing.Value)
	}
	return ev
}
