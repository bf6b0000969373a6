package profiler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/protocol"
)

// useFastDispatch reports whether core-local reads and writes go through the
// command queue.
func (p *DeviceProfiler) useFastDispatch(state DumpState) bool {
	return state != ForceUMDRead && p.platform.DispatchActive
}

func (p *DeviceProfiler) shardQueue() (device.ShardQueue, error) {
	return device.QueueFor(p.dev)
}

// readControlBuffer fetches the control words of core into controlBuffers.
func (p *DeviceProfiler) readControlBuffer(ctx context.Context, core device.CoreCoord, state DumpState) error {
	chip := p.dev.ID()
	addr := p.platform.HAL.ProfilerControlAddress(p.platform.Cluster.CoreType(chip, core))

	var words []uint32
	if p.useFastDispatch(state) {
		q, err := p.shardQueue()
		if err != nil {
			return err
		}
		words = make([]uint32, protocol.ControlVectorSize)
		if err := q.ReadShard(ctx, core, addr, words); err != nil {
			return fmt.Errorf("reading control buffer of core %s: %w", core, err)
		}
	} else {
		var err error
		words, err = p.platform.Cluster.ReadCore(ctx, chip, core, addr, protocol.ControlBufferSize)
		if err != nil {
			return fmt.Errorf("reading control buffer of core %s: %w", core, err)
		}
	}
	if len(words) < protocol.ControlVectorSize {
		return fmt.Errorf("control buffer of core %s has %d words, expected %d", core, len(words), protocol.ControlVectorSize)
	}
	p.controlBuffers[core] = words
	return nil
}

// resetControlWords returns a zeroed control buffer that keeps the words the
// firmware needs to find its DRAM slice.
func resetControlWords(control []uint32) []uint32 {
	reset := make([]uint32, protocol.ControlVectorSize)
	for _, i := range []int{protocol.DRAMProfilerAddress, protocol.FlatID, protocol.CoreCountPerDRAM} {
		reset[i] = control[i]
	}
	return reset
}

// resetControlBuffer writes the reset control buffer back to core. Cores
// whose control buffer could not be read are left untouched.
func (p *DeviceProfiler) resetControlBuffer(ctx context.Context, core device.CoreCoord, state DumpState) error {
	control, ok := p.controlBuffers[core]
	if !ok {
		return nil
	}
	chip := p.dev.ID()
	addr := p.platform.HAL.ProfilerControlAddress(p.platform.Cluster.CoreType(chip, core))
	reset := resetControlWords(control)

	if p.useFastDispatch(state) {
		q, err := p.shardQueue()
		if err != nil {
			return err
		}
		if err := q.WriteShard(ctx, core, addr, reset); err != nil {
			return fmt.Errorf("resetting control buffer of core %s: %w", core, err)
		}
		return nil
	}
	if err := p.platform.Cluster.WriteCore(ctx, chip, core, addr, reset); err != nil {
		return fmt.Errorf("resetting control buffer of core %s: %w", core, err)
	}
	return nil
}

// readProfileBuffer fills profileBuffer with every DRAM bank of the device.
// Banks that fail to read are logged and left zero.
func (p *DeviceProfiler) readProfileBuffer(ctx context.Context, state DumpState) error {
	if p.platform.DispatchActive && !UseSlowDispatchForReading(state, p.platform.Options) {
		return p.fastReadProfileBuffer(ctx)
	}
	return p.slowReadProfileBuffer(ctx)
}

func (p *DeviceProfiler) allocProfileBuffer(banks int) int {
	bankWords := int(p.dev.ProfilerBankSizeBytes() / 4)
	size := bankWords * banks
	if len(p.profileBuffer) != size {
		p.profileBuffer = make([]uint32, size)
	} else {
		clear(p.profileBuffer)
	}
	return bankWords
}

func (p *DeviceProfiler) fastReadProfileBuffer(ctx context.Context) error {
	q, err := p.shardQueue()
	if err != nil {
		return err
	}
	grid := p.dev.DRAMGridSize()
	bankWords := p.allocProfileBuffer(grid.X * grid.Y)
	addr := p.platform.HAL.ProfilerDRAMAddress()

	idx := 0
	for x := 0; x < grid.X; x++ {
		for y := 0; y < grid.Y; y++ {
			dramCore := p.dev.VirtualDRAMCore(device.CoreCoord{X: x, Y: y})
			if err := q.ReadShard(ctx, dramCore, addr, p.profileBuffer[idx:idx+bankWords]); err != nil {
				logrus.Errorf("reading profiler DRAM bank at core %s of device %d: %v", dramCore, p.dev.ID(), err)
			}
			idx += bankWords
		}
	}
	return nil
}

func (p *DeviceProfiler) slowReadProfileBuffer(ctx context.Context) error {
	channels := p.dev.NumDRAMChannels()
	bankWords := p.allocProfileBuffer(channels)
	addr := p.platform.HAL.ProfilerDRAMAddress()
	chip := p.dev.ID()

	idx := 0
	for ch := 0; ch < channels; ch++ {
		if err := p.platform.Cluster.ReadDRAM(ctx, chip, ch, addr, p.profileBuffer[idx:idx+bankWords]); err != nil {
			logrus.Errorf("reading profiler DRAM channel %d of device %d: %v", ch, chip, err)
		}
		idx += bankWords
	}
	return nil
}

// readL1DataBuffer returns the core-local data buffers of every RISC of core.
func (p *DeviceProfiler) readL1DataBuffer(ctx context.Context, core device.CoreCoord, state DumpState) ([]uint32, error) {
	chip := p.dev.ID()
	coreType := p.platform.Cluster.CoreType(chip, core)
	addr := p.platform.HAL.ProfilerBufferAddress(coreType)
	riscs := uint32(p.platform.HAL.NumRiscProcessors(coreType))

	if p.platform.DispatchActive && !UseSlowDispatchForReading(state, p.platform.Options) {
		q, err := p.shardQueue()
		if err != nil {
			return nil, err
		}
		words := make([]uint32, p.layout.L1VectorSize*riscs)
		if err := q.ReadShard(ctx, core, addr, words); err != nil {
			return nil, fmt.Errorf("reading profiler buffer of core %s: %w", core, err)
		}
		return words, nil
	}
	words, err := p.platform.Cluster.ReadCore(ctx, chip, core, addr, p.layout.L1BufferSize()*riscs)
	if err != nil {
		return nil, fmt.Errorf("reading profiler buffer of core %s: %w", core, err)
	}
	return words, nil
}
