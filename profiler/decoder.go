package profiler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/noctrace"
	"github.com/devprof/devprof/profiler/protocol"
)

// decodeOutput collects what decoding produces besides zones.
type decodeOutput struct {
	csv       *csvLog
	nocEvents []noctrace.Event
}

// readRiscProfilerResults decodes the packets of every RISC of core from buf.
// It fails only on a layout mismatch between firmware and host.
func (p *DeviceProfiler) readRiscProfilerResults(core device.CoreCoord, buf []uint32, source DataSource,
	metadata *OptionalMetadata, out *decodeOutput) error {
	control, ok := p.controlBuffers[core]
	if !ok {
		return nil
	}
	if control[protocol.HostBufferEndIndexBrEr] == 0 && control[protocol.HostBufferEndIndexNc] == 0 {
		return nil
	}

	chip := p.dev.ID()
	coreFlatID, ok := p.platform.Cluster.ProfilerFlatID(chip, core)
	if !ok {
		logrus.Errorf("device %d core %s has no profiler flat id; skipping", chip, core)
		return nil
	}
	phys := p.physicalCoord(chip, core)
	coreType := p.platform.Cluster.CoreType(chip, core)

	riscCount := 1
	if coreType == device.Tensix {
		riscCount = protocol.MaxRiscPerCore
	}

	for riscEndIndex := 0; riscEndIndex < riscCount; riscEndIndex++ {
		bufferEndIndex := control[riscEndIndex]
		if source == L1 {
			bufferEndIndex = control[riscEndIndex+protocol.DeviceBufferEndIndexBrEr]
		}
		riscType := protocol.ERiscType
		if coreType == device.Tensix {
			riscType = riscEndIndex
		}
		if bufferEndIndex == 0 {
			continue
		}

		shift := p.layout.DRAMSliceStart(coreFlatID, uint32(riscEndIndex))
		if source == L1 {
			shift = p.layout.L1SliceStart(uint32(riscEndIndex))
		}

		if (control[protocol.DroppedZones]>>riscEndIndex)&1 == 1 {
			logrus.Warnf("Profiler DRAM buffers were full, markers were dropped! device %d, worker core %d, %d, Risc %s, "+
				"bufferEndIndex = %d. Please either decrease the number of ops being profiled or run dump device profiler more often",
				chip, core.X, core.Y, protocol.RiscNames[riscEndIndex], bufferEndIndex)
		}

		r := riscDecoder{
			p:          p,
			chip:       chip,
			core:       core,
			phys:       phys,
			coreType:   coreType,
			coreFlatID: coreFlatID,
			riscIndex:  uint32(riscEndIndex),
			riscType:   riscType,
			metadata:   metadata,
			out:        out,
		}
		if err := r.decode(buf, int(shift), int(shift)+int(bufferEndIndex)); err != nil {
			return err
		}
	}
	return nil
}

// riscDecoder walks the packets of one RISC slice.
type riscDecoder struct {
	p          *DeviceProfiler
	chip       int
	core       device.CoreCoord
	phys       device.CoreCoord
	coreType   device.CoreType
	coreFlatID uint32
	riscIndex  uint32
	riscType   int
	metadata   *OptionalMetadata
	out        *decodeOutput

	header      protocol.RunHeader
	newRunStart bool
	opTimeH     uint32
	opTimeL     uint32
	opName      string
}

func (r *riscDecoder) decode(buf []uint32, start, end int) error {
	for index := start; index < end; index += protocol.MarkerWords {
		if index+1 >= len(buf) {
			logrus.Errorf("device %d core %s risc %d: end index %d is past the %d-word profiler buffer",
				r.chip, r.core, r.riscIndex, end, len(buf))
			return nil
		}
		word0, word1 := buf[index], buf[index+1]

		switch {
		case !r.newRunStart && word0 == 0 && word1 == 0:
			r.newRunStart = true
			r.opTimeH, r.opTimeL = 0, 0
		case r.newRunStart:
			r.newRunStart = false
			r.header = protocol.DecodeRunHeader(word0, word1)
			r.opName = r.metadata.OpName(r.chip, r.header.RunHostID)
		default:
			timerID := protocol.TimerID(word0)
			timeH := protocol.TimeHigh(word0)
			switch protocol.PacketTypeOf(timerID) {
			case protocol.ZoneStart, protocol.ZoneEnd:
				if timerID == 0 && timeH == 0 {
					continue
				}
				if r.opTimeH == 0 {
					r.opTimeH = timeH
				}
				if r.opTimeL == 0 {
					r.opTimeL = word1
				}
				if err := r.checkHeader(index); err != nil {
					return err
				}
				r.emit(0, timerID, protocol.Timestamp(timeH, word1))
			case protocol.ZoneTotal:
				r.emit(uint64(word1), timerID, protocol.Timestamp(r.opTimeH, r.opTimeL))
			case protocol.TSData:
				index += protocol.MarkerWords
				if index+1 >= len(buf) {
					logrus.Errorf("device %d core %s risc %d: truncated data packet at index %d",
						r.chip, r.core, r.riscIndex, index)
					return nil
				}
				data := uint64(buf[index])<<32 | uint64(buf[index+1])
				r.emit(data, timerID, protocol.Timestamp(timeH, word1))
			case protocol.TSEvent:
				r.emit(0, timerID, protocol.Timestamp(timeH, word1))
			}
		}
	}
	return nil
}

func (r *riscDecoder) checkHeader(index int) error {
	if r.header.RiscNum != r.riscIndex {
		return fmt.Errorf("%w: unexpected risc id, expected %d, read %d. In core %d,%d %s at run %d, index %d",
			ErrProtocolMismatch, r.riscIndex, r.header.RiscNum, r.core.X, r.core.Y, r.coreType, r.header.RunHostID, index)
	}
	if r.header.CoreFlatID != r.coreFlatID {
		return fmt.Errorf("%w: unexpected core id, expected %d, read %d. In core %d,%d %s at run %d, index %d",
			ErrProtocolMismatch, r.coreFlatID, r.header.CoreFlatID, r.core.X, r.core.Y, r.coreType, r.header.RunHostID, index)
	}
	return nil
}

func (r *riscDecoder) emit(data uint64, timerID uint32, timestamp uint64) {
	r.p.logPacket(r.out, packet{
		runHostID: r.header.RunHostID,
		opName:    r.opName,
		chip:      r.chip,
		core:      r.phys,
		risc:      r.riscType,
		data:      data,
		timerID:   timerID,
		timestamp: timestamp,
	})
}
