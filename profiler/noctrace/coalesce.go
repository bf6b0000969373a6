package noctrace

import (
	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/noc"
)

// DefaultCoalesceWindowCycles is the largest timestamp distance, in cycles,
// between a fabric send and the local write that carries it.
const DefaultCoalesceWindowCycles = 1000

// Config parameterizes coalescing and serialization for one device.
type Config struct {
	DeviceID int
	// Mapper translates router coordinates to physical. Nil is identity.
	Mapper CoordMapper
	// Lookup resolves ethernet router cores to fabric channels. Nil finds nothing.
	Lookup *noc.RoutingLookup
	// WindowCycles is the coalescing window. Zero uses DefaultCoalesceWindowCycles.
	WindowCycles uint64
}

func (c Config) window() uint64 {
	if c.WindowCycles == 0 {
		return DefaultCoalesceWindowCycles
	}
	return c.WindowCycles
}

func (c Config) mapper() CoordMapper {
	if c.Mapper == nil {
		return identity
	}
	return c.Mapper
}

// Coalesce fuses each (fabric send, routing fields, local write) triplet into
// one event. A fabric-headed triplet is always consumed whole: it yields the
// fused event, nothing when the triplet is malformed, or the three original
// events when the router has no known fabric channel. Every other event is
// copied through.
func Coalesce(events []Event, cfg Config) []Event {
	out := make([]Event, 0, len(events))
	for i := 0; i < len(events); {
		if noc.IsFabricName(events[i].Type) && i+2 < len(events) {
			out = append(out, coalesceTriplet(events[i], events[i+1], events[i+2], cfg)...)
			i += 3
			continue
		}
		out = append(out, events[i])
		i++
	}
	return out
}

func coalesceTriplet(fabric, routing, write Event, cfg Config) []Event {
	if write.Type != noc.Write.String() {
		logrus.Errorf("[profiler noc tracing] local noc event following fabric event is not a regular noc write, but instead : %s",
			write.Type)
		return nil
	}

	diff := int64(write.Timestamp - fabric.Timestamp)
	if diff < 0 {
		diff = -diff
	}
	if uint64(diff) > cfg.window() {
		logrus.Warnf("[profiler noc tracing] Failed to coalesce fabric noc trace events because timestamps are implausibly far apart.")
		return nil
	}

	if write.DX == nil || write.DY == nil {
		logrus.Warnf("[profiler noc tracing] local noc write in op '%s' has no destination; cannot locate the fabric router",
			fabric.OpName)
		return nil
	}
	ethX, ethY := cfg.mapper()(*write.DX, *write.DY)

	fieldsType, ok := noc.ParseFabricPacketType(fabric.RoutingFieldsType)
	if !ok {
		logrus.Errorf("[profiler noc tracing] Failed to parse routing fields type: %s", fabric.RoutingFieldsType)
		return nil
	}
	if routing.RoutingFieldsValue == nil {
		logrus.Warnf("[profiler noc tracing] event following fabric send in op '%s' carries no routing fields", fabric.OpName)
		return nil
	}
	startDistance, rng, err := noc.StartDistanceAndRange(fieldsType, *routing.RoutingFieldsValue)
	if err != nil {
		logrus.Errorf("[profiler noc tracing] %v", err)
		return nil
	}

	ethChan, ok := cfg.Lookup.Channel(cfg.DeviceID, ethX, ethY)
	if !ok {
		logrus.Warnf("[profiler noc tracing] Fabric edm_location->channel lookup failed for event in op '%s' at ts %d: "+
			"src_dev=%d, eth_core=(%d, %d), start_distance=%d. Keeping original events.",
			fabric.OpName, fabric.Timestamp, cfg.DeviceID, ethX, ethY, startDistance)
		return []Event{fabric, routing, write}
	}

	xferType, ok := noc.ParseEventType(fabric.Type)
	if !ok || !xferType.IsFabric() {
		logrus.Errorf("[profiler noc tracing] Failed to parse noc transfer type: %s", fabric.Type)
		return nil
	}
	if !xferType.IsFabricUnicast() || fabric.DX == nil || fabric.DY == nil {
		logrus.Errorf("[profiler noc tracing] Noc multicasts in fabric events are not supported!")
		return nil
	}

	fused := write
	fused.Timestamp = fabric.Timestamp
	fused.SetDest(*fabric.DX, *fabric.DY)
	fused.Type = fabric.Type
	fused.FabricSend = &FabricSend{EthChan: ethChan, StartDistance: startDistance, Range: rng}
	return []Event{fused}
}
