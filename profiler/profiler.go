// Package profiler collects device profiler results from a chip: it reads the
// per-core control and data buffers, decodes the packet stream into zones and
// NoC events, writes the CSV and NoC trace logs, and pushes zones to a tracing
// sink.
//
// A DeviceProfiler is owned by one caller. DumpResults, PushTracingResults
// and Close must not run concurrently on the same instance.
package profiler

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/protocol"
	"github.com/devprof/devprof/profiler/tracing"
	"github.com/devprof/devprof/profiler/zonesrc"
)

// ErrProtocolMismatch marks a packet whose RISC or core id disagrees with the
// buffer slice it was read from: the firmware and host buffer layouts differ.
var ErrProtocolMismatch = errors.New("profiler buffer layout mismatch")

// Platform is the explicit context the profiler runs in.
type Platform struct {
	Cluster device.Cluster
	HAL     device.HAL
	// DispatchActive reports whether dispatch firmware serves the command queue.
	DispatchActive bool
	Options        Options
	// Sink receives zones on push. Nil discards them.
	Sink tracing.Sink
	// CPUTime returns the host time in ns used for default calibration. Nil
	// uses the wall clock.
	CPUTime func() float64
}

// dispatchMetadata is the command descriptor of the dispatch zone in flight.
type dispatchMetadata struct {
	cmdType         string
	cmdSubtype      string
	workerRuntimeID uint32
}

// DeviceProfiler collects the profiler results of one chip.
type DeviceProfiler struct {
	platform Platform
	dev      device.Device
	layout   protocol.Layout

	outputDir     string
	arch          string
	coreFrequency int

	registry          *zonesrc.Registry
	zones             map[tracing.DeviceEvent]struct{}
	current           tracing.DeviceEvent
	haveCurrent       bool
	dispatch          dispatchMetadata
	deviceCores       map[tracing.CoreKey]struct{}
	smallestTimestamp uint64

	controlBuffers map[device.CoreCoord][]uint32
	profileBuffer  []uint32

	syncInfo           tracing.SyncInfo
	deviceCoreSyncInfo map[device.CoreCoord]tracing.SyncInfo
	coreSyncInfo       map[tracing.CoreKey]tracing.SyncInfo
	contexts           map[tracing.CoreKey]tracing.Context
	contextOrder       []tracing.CoreKey

	freqScale float64
	shift     float64
	closed    bool
}

// New returns a profiler for dev writing into the configured logs directory.
// newLogs removes the CSV log of a previous session.
func New(platform Platform, dev device.Device, newLogs bool) (*DeviceProfiler, error) {
	if platform.Cluster == nil || platform.HAL == nil {
		return nil, fmt.Errorf("profiler platform needs a cluster and a HAL")
	}
	outputDir := platform.Options.LogsDir
	if outputDir == "" {
		outputDir = DefaultLogsDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating profiler output directory: %w", err)
	}

	p := &DeviceProfiler{
		platform:           platform,
		dev:                dev,
		layout:             platform.HAL.Layout(),
		outputDir:          outputDir,
		zones:              make(map[tracing.DeviceEvent]struct{}),
		deviceCores:        make(map[tracing.CoreKey]struct{}),
		smallestTimestamp:  math.MaxUint64,
		controlBuffers:     make(map[device.CoreCoord][]uint32),
		deviceCoreSyncInfo: make(map[device.CoreCoord]tracing.SyncInfo),
		coreSyncInfo:       make(map[tracing.CoreKey]tracing.SyncInfo),
		contexts:           make(map[tracing.CoreKey]tracing.Context),
		freqScale:          1,
	}
	if newLogs {
		p.FreshDeviceLog()
	}
	return p, nil
}

// OutputDir is the directory holding the CSV log.
func (p *DeviceProfiler) OutputDir() string { return p.outputDir }

// LogPath is the path of the CSV log.
func (p *DeviceProfiler) LogPath() string {
	return filepath.Join(p.outputDir, DeviceSideLog)
}

// SetOutputDir moves subsequent logs to dir, creating it.
func (p *DeviceProfiler) SetOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating profiler output directory: %w", err)
	}
	p.outputDir = dir
	return nil
}

// FreshDeviceLog removes the CSV log so the next dump starts a new one.
func (p *DeviceProfiler) FreshDeviceLog() {
	if err := os.Remove(p.LogPath()); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("could not remove device profiler log %s: %v", p.LogPath(), err)
	}
}

// SetDeviceArchitecture sets the architecture named in the CSV header.
func (p *DeviceProfiler) SetDeviceArchitecture(arch string) { p.arch = arch }

// SetSyncInfo sets the chip-wide host/device sync triple.
func (p *DeviceProfiler) SetSyncInfo(info tracing.SyncInfo) { p.syncInfo = info }

// SyncInfo returns the chip-wide host/device sync triple.
func (p *DeviceProfiler) SyncInfo() tracing.SyncInfo { return p.syncInfo }

// SetCoreSyncInfo records a sync triple measured on one core. It replaces the
// chip-wide triple on the next push when newer.
func (p *DeviceProfiler) SetCoreSyncInfo(core device.CoreCoord, info tracing.SyncInfo) {
	p.deviceCoreSyncInfo[core] = info
}

// SetCalibration sets the linear correction applied to pushed timestamps.
func (p *DeviceProfiler) SetCalibration(freqScale, shift float64) {
	p.freqScale, p.shift = freqScale, shift
}

// ZoneCount is the number of distinct zones waiting to be pushed.
func (p *DeviceProfiler) ZoneCount() int { return len(p.zones) }

// Zones returns a copy of the zones waiting to be pushed.
func (p *DeviceProfiler) Zones() []tracing.DeviceEvent {
	zones := make([]tracing.DeviceEvent, 0, len(p.zones))
	for z := range p.zones {
		zones = append(zones, z)
	}
	return zones
}

// Close pushes the remaining zones and releases every tracing context.
func (p *DeviceProfiler) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.PushTracingResults()

	var errs []error
	for _, key := range p.contextOrder {
		if err := p.contexts[key].Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing tracing context of device %d core (%d,%d): %w",
				key.ChipID, key.X, key.Y, err))
		}
	}
	clear(p.contexts)
	p.contextOrder = nil
	return errors.Join(errs...)
}

func (p *DeviceProfiler) cpuTime() float64 {
	if p.platform.CPUTime != nil {
		return p.platform.CPUTime()
	}
	return float64(time.Now().UnixNano())
}
