package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/devprof/devprof/profiler"
	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/tracing"
)

var (
	optionsPath   string      // Profiler options YAML
	dumpStateName string      // NORMAL, ONLY_DISPATCH_CORES or FORCE_UMD_READ
	sourceName    string      // DRAM or L1
	chromeTrace   string      // Chrome trace output path
	opNamesPath   string      // Op names YAML
	newLogs       bool        // Remove the CSV log of a previous session
	dumpOptions   optionFlags // Flags overriding the options file
)

// dumpSession is one profiler attached to a snapshot, with the tracing sink
// its zones are pushed to.
type dumpSession struct {
	snap     *device.Snapshot
	profiler *profiler.DeviceProfiler
	sink     *tracing.ChromeSink
}

// newDumpSession creates a profiler for snap. An empty chromePath discards
// pushed zones.
func newDumpSession(snap *device.Snapshot, opts profiler.Options, chromePath string, fresh bool) (*dumpSession, error) {
	s := &dumpSession{snap: snap}
	platform := profiler.Platform{
		Cluster:        snap,
		HAL:            snap,
		DispatchActive: snap.DispatchActive(),
		Options:        opts,
	}
	if chromePath != "" {
		s.sink = tracing.NewChromeSink(chromePath)
		platform.Sink = s.sink
	}
	p, err := profiler.New(platform, snap, fresh)
	if err != nil {
		return nil, err
	}
	p.SetDeviceArchitecture(snap.Arch())
	s.profiler = p
	return s, nil
}

// dump reads every profiled core of the snapshot.
func (s *dumpSession) dump(ctx context.Context, state profiler.DumpState, source profiler.DataSource,
	metadata *profiler.OptionalMetadata) error {
	cores := s.snap.Cores()
	logrus.Infof("Dumping %d cores of device %d (%s, %s)", len(cores), s.snap.ID(), state, source)
	if err := s.profiler.DumpResults(ctx, cores, state, source, metadata); err != nil {
		return fmt.Errorf("dumping device %d: %w", s.snap.ID(), err)
	}
	logrus.Infof("Device log written to %s", s.profiler.LogPath())
	return nil
}

// close pushes the remaining zones and writes the trace file.
func (s *dumpSession) close() error {
	err := s.profiler.Close()
	if s.sink != nil {
		err = errors.Join(err, s.sink.Flush())
	}
	return err
}

// dumpCmd replays a captured device through the profiler
var dumpCmd = &cobra.Command{
	Use:   "dump SNAPSHOT_DIR",
	Short: "Dump the profiler buffers of a captured device",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := resolveOptions(optionsPath, cmd.Flags(), &dumpOptions)
		if err != nil {
			logrus.Fatalf("Failed to load profiler options: %v", err)
		}
		if !opts.Enabled {
			logrus.Warnf("Profiler disabled by %s; nothing to dump", optionsPath)
			return
		}
		state, err := profiler.ParseDumpState(dumpStateName)
		if err != nil {
			logrus.Fatalf("Invalid --state: %v", err)
		}
		source, err := profiler.ParseDataSource(sourceName)
		if err != nil {
			logrus.Fatalf("Invalid --source: %v", err)
		}
		var metadata *profiler.OptionalMetadata
		if opNamesPath != "" {
			if metadata, err = loadOpNames(opNamesPath); err != nil {
				logrus.Fatalf("Failed to load op names: %v", err)
			}
		}

		snap, err := device.LoadSnapshot(args[0])
		if err != nil {
			logrus.Fatalf("Failed to load snapshot: %v", err)
		}
		session, err := newDumpSession(snap, opts, chromeTrace, newLogs)
		if err != nil {
			logrus.Fatalf("Failed to create profiler: %v", err)
		}
		atexit.Register(func() {
			if err := session.close(); err != nil {
				logrus.Errorf("Closing profiler: %v", err)
			}
		})

		if err := session.dump(cmd.Context(), state, source, metadata); err != nil {
			logrus.Errorf("%v", err)
			atexit.Exit(1)
		}
		atexit.Exit(0)
	},
}

func init() {
	dumpCmd.Flags().StringVar(&optionsPath, "options", "", "Profiler options YAML (flags override its values)")
	dumpCmd.Flags().StringVar(&dumpStateName, "state", profiler.Normal.String(), "Dump state (NORMAL, ONLY_DISPATCH_CORES, FORCE_UMD_READ)")
	dumpCmd.Flags().StringVar(&sourceName, "source", profiler.DRAM.String(), "Profiler buffer to read (DRAM, L1)")
	dumpCmd.Flags().StringVar(&chromeTrace, "chrome-trace", "", "Write pushed zones as a Chrome trace to this path")
	dumpCmd.Flags().StringVar(&opNamesPath, "op-names", "", "YAML file naming ops by chip and runtime id")
	dumpCmd.Flags().BoolVar(&newLogs, "new-logs", false, "Start a new device log instead of appending")
	dumpOptions.register(dumpCmd.Flags())
}
