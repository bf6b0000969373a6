package profiler

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/noc"
	"github.com/devprof/devprof/profiler/noctrace"
	"github.com/devprof/devprof/profiler/zonesrc"
)

// DumpResults reads the profiler buffers of cores, appends their packets to
// the CSV log, records their zones for the next push and, in the normal state
// with NoC events enabled, writes the NoC traces. Only a buffer layout
// mismatch is returned; read and filesystem failures are logged.
func (p *DeviceProfiler) DumpResults(ctx context.Context, cores []device.CoreCoord, state DumpState,
	source DataSource, metadata *OptionalMetadata) error {
	chip := p.dev.ID()
	opts := p.platform.Options
	p.coreFrequency = p.platform.Cluster.AICLK(chip)
	p.loadRegistry()

	var lookup *noc.RoutingLookup
	if state == Normal && opts.NocEventsEnabled {
		lookup = p.routingLookup(chip)
	}

	if source == DRAM {
		for _, core := range cores {
			if err := p.readControlBuffer(ctx, core, state); err != nil {
				logrus.Errorf("device %d: %v; skipping core", chip, err)
				delete(p.controlBuffers, core)
			}
		}
		if err := p.readProfileBuffer(ctx, state); err != nil {
			logrus.Errorf("device %d: reading profiler DRAM buffer: %v", chip, err)
		}
		for _, core := range cores {
			if err := p.resetControlBuffer(ctx, core, state); err != nil {
				logrus.Errorf("device %d: %v", chip, err)
			}
		}
	}

	logrus.Debugf("dumping device %d, state %s, source %s", chip, state, source)
	if opts.NocEventsEnabled {
		logrus.Warn("Profiler NoC events are enabled; this can add 1-15% cycle overhead to typical operations!")
	}

	logPath := p.LogPath()
	csv, err := openCSVLog(logPath, p.arch, p.coreFrequency)
	if err != nil {
		logrus.Errorf("Could not open kernel profiler dump file '%s': %v", logPath, err)
		return nil
	}
	out := &decodeOutput{csv: csv}
	defer func() {
		if err := csv.Close(); err != nil {
			logrus.Errorf("Could not write kernel profiler dump file '%s': %v", logPath, err)
		}
	}()

	for _, core := range cores {
		buf := p.profileBuffer
		if source == L1 {
			var ok bool
			if buf, ok = p.readL1Core(ctx, core, state); !ok {
				continue
			}
		}
		if err := p.readRiscProfilerResults(core, buf, source, metadata, out); err != nil {
			return err
		}
	}

	reportPath := opts.NocEventsReportPath
	if reportPath == "" {
		reportPath = p.outputDir
	}
	if state == Normal && opts.NocEventsEnabled {
		noctrace.Serialize(out.nocEvents, reportPath, noctrace.Config{
			DeviceID:     chip,
			Mapper:       p.coordMapper(chip),
			Lookup:       lookup,
			WindowCycles: opts.CoalesceWindowCycles,
		})
	}
	return nil
}

// readL1Core runs the control read, control reset and data read of one core
// for the L1 source.
func (p *DeviceProfiler) readL1Core(ctx context.Context, core device.CoreCoord, state DumpState) ([]uint32, bool) {
	chip := p.dev.ID()
	if err := p.readControlBuffer(ctx, core, state); err != nil {
		logrus.Errorf("device %d: %v; skipping core", chip, err)
		delete(p.controlBuffers, core)
		return nil, false
	}
	if err := p.resetControlBuffer(ctx, core, state); err != nil {
		logrus.Errorf("device %d: %v", chip, err)
	}
	buf, err := p.readL1DataBuffer(ctx, core, state)
	if err != nil {
		logrus.Errorf("device %d: %v; skipping core", chip, err)
		return nil, false
	}
	return buf, true
}

func (p *DeviceProfiler) loadRegistry() {
	path := p.platform.Options.ZoneSrcLocationsLog
	if path == "" {
		path = DefaultZoneSrcLocationsLog
	}
	registry, err := zonesrc.Load(filepath.Clean(path))
	if err != nil {
		logrus.Errorf("%v; zones will be unidentified", err)
		registry = zonesrc.New()
	}
	p.registry = registry
}

func (p *DeviceProfiler) routingLookup(chip int) *noc.RoutingLookup {
	lookup := noc.NewRoutingLookup()
	for _, r := range p.platform.Cluster.FabricRouters(chip) {
		lookup.Add(noc.Router{ChipID: chip, X: r.Core.X, Y: r.Core.Y}, r.Channel)
	}
	return lookup
}
