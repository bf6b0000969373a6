package profiler

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/devprof/devprof/profiler/noctrace"
)

// DeviceSideLog is the CSV log file name inside the output directory.
const DeviceSideLog = "profile_log_device.csv"

// Default locations, relative to the working directory.
const (
	DefaultLogsDir             = "generated/profiler/.logs"
	DefaultZoneSrcLocationsLog = "generated/profiler/zone_src_locations.log"
)

// Options are the runtime options the profiler consumes.
// All fields must carry yaml tags to satisfy KnownFields(true) strict parsing.
type Options struct {
	Enabled             bool   `yaml:"profiler_enabled"`
	NocEventsEnabled    bool   `yaml:"profiler_noc_events_enabled"`
	DoDispatchCores     bool   `yaml:"profiler_do_dispatch_cores"`
	NocEventsReportPath string `yaml:"profiler_noc_events_report_path"`
	LogsDir             string `yaml:"profiler_logs_dir"`
	ZoneSrcLocationsLog string `yaml:"profiler_zone_src_locations_log"`
	// CoalesceWindowCycles bounds the timestamp distance between a fabric
	// send and its local write.
	CoalesceWindowCycles uint64 `yaml:"fabric_coalesce_window_cycles"`
}

// DefaultOptions returns the options used when no file is given.
func DefaultOptions() Options {
	return Options{
		Enabled:              true,
		LogsDir:              DefaultLogsDir,
		ZoneSrcLocationsLog:  DefaultZoneSrcLocationsLog,
		CoalesceWindowCycles: noctrace.DefaultCoalesceWindowCycles,
	}
}

// LoadOptions reads options from a YAML file on top of DefaultOptions.
// Unknown keys are rejected.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading profiler options: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&opts); err != nil {
		return opts, fmt.Errorf("parsing profiler options %s: %w", path, err)
	}
	return opts, nil
}

// DumpState selects which cores are dumped and how.
type DumpState int

const (
	Normal DumpState = iota
	OnlyDispatchCores
	ForceUMDRead
)

var dumpStateNames = map[DumpState]string{
	Normal:            "NORMAL",
	OnlyDispatchCores: "ONLY_DISPATCH_CORES",
	ForceUMDRead:      "FORCE_UMD_READ",
}

func (s DumpState) String() string {
	return dumpStateNames[s]
}

// ParseDumpState is the inverse of DumpState.String.
func ParseDumpState(s string) (DumpState, error) {
	for state, name := range dumpStateNames {
		if name == s {
			return state, nil
		}
	}
	return Normal, fmt.Errorf("unknown dump state %q", s)
}

// DataSource is the buffer the profiler data is read from.
type DataSource int

const (
	DRAM DataSource = iota
	L1
)

func (d DataSource) String() string {
	switch d {
	case DRAM:
		return "DRAM"
	case L1:
		return "L1"
	}
	return ""
}

// ParseDataSource is the inverse of DataSource.String.
func ParseDataSource(s string) (DataSource, error) {
	switch s {
	case "DRAM":
		return DRAM, nil
	case "L1":
		return L1, nil
	}
	return DRAM, fmt.Errorf("unknown data source %q", s)
}

// OnlyProfileDispatchCores reports whether a dump is restricted to dispatch cores.
func OnlyProfileDispatchCores(state DumpState, opts Options) bool {
	return opts.DoDispatchCores && state == OnlyDispatchCores
}

// UseSlowDispatchForReading reports whether reads must bypass the command queue.
func UseSlowDispatchForReading(state DumpState, opts Options) bool {
	return state == ForceUMDRead || OnlyProfileDispatchCores(state, opts)
}
