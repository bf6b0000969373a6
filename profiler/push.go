package profiler

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/tracing"
)

// PushTracingResults hands every pending zone to the tracing sink in
// timestamp order and clears the zone set. Contexts are created, or
// recalibrated, in order of the first timestamp of their core.
func (p *DeviceProfiler) PushTracingResults() {
	cores := make([]device.CoreCoord, 0, len(p.deviceCoreSyncInfo))
	for core := range p.deviceCoreSyncInfo {
		cores = append(cores, core)
	}
	slices.SortFunc(cores, func(a, b device.CoreCoord) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	for _, core := range cores {
		if info := p.deviceCoreSyncInfo[core]; info.NewerThan(p.syncInfo) {
			p.syncInfo = info
		}
	}

	events := make([]*tracing.DeviceEvent, 0, len(p.zones))
	for z := range p.zones {
		z := z
		events = append(events, &z)
	}
	tracing.SortDeviceEvents(events)

	if p.platform.Sink != nil {
		for _, ev := range events {
			if len(p.deviceCores) == 0 {
				break
			}
			key := ev.Core()
			if _, pending := p.deviceCores[key]; pending {
				p.updateContext(key)
				delete(p.deviceCores, key)
			}
		}

		for _, ev := range events {
			adjusted := *ev
			adjusted.Timestamp = uint64(math.Round(float64(ev.Timestamp)*p.freqScale + p.shift))
			tracing.Push(p.contexts[adjusted.Core()], adjusted)
		}
	}

	clear(p.zones)
	clear(p.deviceCores)
	p.haveCurrent = false
}

// updateContext creates the tracing context of key, or recalibrates it when
// the chip sync triple moved forward since its last calibration.
func (p *DeviceProfiler) updateContext(key tracing.CoreKey) {
	ctx, ok := p.contexts[key]
	if !ok {
		info := p.syncInfo
		if info.Frequency == 0 {
			info = tracing.SyncInfo{
				CPUTime:    p.cpuTime(),
				DeviceTime: float64(p.smallestTimestamp),
				Frequency:  float64(p.coreFrequency) / 1000,
			}
			p.syncInfo = info
			logrus.Debugf("For device %d, core %d,%d default frequency was used and its zones will be out of sync",
				key.ChipID, key.X, key.Y)
		} else {
			logrus.Debugf("Device %d, core %d,%d sync info are, frequency %g GHz, delay %g cycles and, sync point %g seconds",
				key.ChipID, key.X, key.Y, info.Frequency, info.DeviceTime, info.CPUTime)
		}
		name := fmt.Sprintf("Device: %d, Core (%d,%d)", key.ChipID, key.X, key.Y)
		p.contexts[key] = p.platform.Sink.NewContext(name, key, info)
		p.contextOrder = append(p.contextOrder, key)
		p.coreSyncInfo[key] = info
		return
	}

	if p.syncInfo.NewerThan(p.coreSyncInfo[key]) {
		info := p.syncInfo
		p.coreSyncInfo[key] = info
		ctx.Calibrate(info)
		logrus.Debugf("Device %d, core %d,%d calibration info are, frequency %g GHz, delay %g cycles and, sync point %g seconds",
			key.ChipID, key.X, key.Y, info.Frequency, info.DeviceTime, info.CPUTime)
	}
}
