package profiler

import (
	"fmt"
	"strings"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/dispatch"
	"github.com/devprof/devprof/profiler/noctrace"
	"github.com/devprof/devprof/profiler/protocol"
	"github.com/devprof/devprof/profiler/tracing"
	"github.com/devprof/devprof/profiler/zonesrc"
)

// packet is one decoded profiler packet.
type packet struct {
	runHostID uint32
	opName    string
	chip      int
	core      device.CoreCoord
	risc      int
	data      uint64
	timerID   uint32
	timestamp uint64
}

// logPacket records a packet: zones go to the zone set, every packet to the
// CSV log and NoC packets to the NoC trace. A zone already in the set is not
// logged again.
func (p *DeviceProfiler) logPacket(out *decodeOutput, pkt packet) {
	packetType := protocol.PacketTypeOf(pkt.timerID)
	details := p.registry.Lookup(protocol.ZoneHash(pkt.timerID))
	riscName := protocol.RiscNames[pkt.risc]
	var metadata map[string]any

	if packetType == protocol.ZoneStart || packetType == protocol.ZoneEnd {
		phase := tracing.Begin
		if packetType == protocol.ZoneEnd {
			phase = tracing.End
		}
		runNum := pkt.runHostID
		if !details.InBriscOrErisc {
			runNum = 0
		}
		ev := tracing.DeviceEvent{
			RunNum:    runNum,
			ChipID:    pkt.chip,
			CoreX:     pkt.core.X,
			CoreY:     pkt.core.Y,
			Risc:      pkt.risc,
			Marker:    pkt.timerID,
			Timestamp: pkt.timestamp,
			Line:      details.SourceLine,
			File:      details.SourceFile,
			ZoneName:  details.ZoneName,
			Phase:     phase,
		}
		_, dup := p.zones[ev]
		p.current, p.haveCurrent = ev, true
		if dup {
			return
		}
		p.zones[ev] = struct{}{}
		p.deviceCores[ev.Core()] = struct{}{}
		p.dispatch.cmdSubtype = ""
	}

	if packetType == protocol.TSData && p.haveCurrent {
		metadata = p.renameDispatchZone(riscName, details, pkt.data)
	}

	if pkt.timestamp < p.smallestTimestamp {
		p.smallestTimestamp = pkt.timestamp
	}

	out.csv.write(csvRow{
		chip:       pkt.chip,
		coreX:      pkt.core.X,
		coreY:      pkt.core.Y,
		risc:       riscName,
		timerID:    uint32(protocol.ZoneHash(pkt.timerID)),
		timestamp:  pkt.timestamp,
		data:       pkt.data,
		runHostID:  pkt.runHostID,
		zoneName:   details.ZoneName,
		packetType: packetType.String(),
		sourceLine: details.SourceLine,
		sourceFile: details.SourceFile,
		metadata:   metadata,
	})

	if p.platform.Options.NocEventsEnabled {
		p.logNocEvent(out, pkt, riscName, details.ZoneName, packetType)
	}
}

// renameDispatchZone folds a dispatch command descriptor into the enclosing
// dispatch zone. It returns the CSV metadata of the descriptor packet.
func (p *DeviceProfiler) renameDispatchZone(riscName string, details zonesrc.ZoneDetails, data uint64) map[string]any {
	cur := p.current
	if (riscName != "BRISC" && riscName != "NCRISC") || cur.Phase != tracing.Begin ||
		!strings.Contains(cur.ZoneName, "DISPATCH") {
		return nil
	}

	var metadata map[string]any
	meta := &p.dispatch
	switch {
	case strings.Contains(details.ZoneName, "process_cmd"):
		meta.cmdType = dispatch.CmdID(data).String()
		metadata = map[string]any{"dispatch_command_type": meta.cmdType}
	case strings.Contains(details.ZoneName, "runtime_host_id_dispatch"):
		meta.workerRuntimeID = uint32(data)
		metadata = map[string]any{"workers_runtime_id": meta.workerRuntimeID}
	case strings.Contains(details.ZoneName, "packed_data_dispatch"):
		meta.cmdSubtype = dispatch.PackedSubtype(data)
		metadata = map[string]any{"dispatch_command_subtype": meta.cmdSubtype}
	case strings.Contains(details.ZoneName, "packed_large_data_dispatch"):
		meta.cmdSubtype = dispatch.PackedWriteLargeType(data).String()
		metadata = map[string]any{"dispatch_command_subtype": meta.cmdSubtype}
	}

	name := meta.cmdType
	if riscName == "BRISC" {
		label := meta.cmdSubtype
		if label == "" {
			label = meta.cmdType
		}
		name = fmt.Sprintf("%d:%s", meta.workerRuntimeID, label)
	}

	renamed := cur
	renamed.RunNum = meta.workerRuntimeID
	renamed.ZoneName = name
	delete(p.zones, cur)
	p.zones[renamed] = struct{}{}
	p.current = renamed
	return metadata
}

func (p *DeviceProfiler) logNocEvent(out *decodeOutput, pkt packet, riscName, zoneName string, packetType protocol.PacketType) {
	src := noctrace.Source{
		RunHostID: pkt.runHostID,
		OpName:    pkt.opName,
		Proc:      riscName,
		DeviceID:  pkt.chip,
		SX:        pkt.core.X,
		SY:        pkt.core.Y,
		Timestamp: pkt.timestamp,
	}
	switch packetType {
	case protocol.ZoneStart, protocol.ZoneEnd:
		phase := tracing.Begin
		if packetType == protocol.ZoneEnd {
			phase = tracing.End
		}
		if ev, ok := noctrace.KernelZone(src, zoneName, phase); ok {
			out.nocEvents = append(out.nocEvents, ev)
		}
	case protocol.TSData:
		out.nocEvents = append(out.nocEvents, noctrace.FromMetadata(src, pkt.data, p.coordMapper(pkt.chip)))
	}
}
