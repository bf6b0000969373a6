package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/devprof/devprof/profiler"
)

// OpName names one op invocation in an op names file.
type OpName struct {
	ChipID    int    `yaml:"chip_id"`
	RuntimeID uint32 `yaml:"runtime_id"`
	Name      string `yaml:"name"`
}

// OpNamesFile is the YAML file given with --op-names.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type OpNamesFile struct {
	Ops []OpName `yaml:"ops"`
}

// optionFlags are the dump flags that override the options file.
type optionFlags struct {
	nocEvents      bool
	dispatchCores  bool
	reportPath     string
	logsDir        string
	zoneSrcLog     string
	coalesceWindow uint64
}

func (o *optionFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&o.nocEvents, "noc-events", false, "Record NoC events and write NoC trace files")
	flags.BoolVar(&o.dispatchCores, "dispatch-cores", false, "Profile dispatch cores")
	flags.StringVar(&o.reportPath, "report-path", "", "Directory for NoC trace files (default: logs directory)")
	flags.StringVar(&o.logsDir, "logs-dir", profiler.DefaultLogsDir, "Directory for the device CSV log")
	flags.StringVar(&o.zoneSrcLog, "zone-src-log", profiler.DefaultZoneSrcLocationsLog, "Zone source locations log")
	flags.Uint64Var(&o.coalesceWindow, "coalesce-window", 0, "Max cycles between a fabric send and its local write (default from options)")
}

// resolveOptions loads the options file, if any, and applies the flags the
// user set explicitly on top of it.
func resolveOptions(path string, flags *pflag.FlagSet, o *optionFlags) (profiler.Options, error) {
	opts := profiler.DefaultOptions()
	if path != "" {
		var err error
		if opts, err = profiler.LoadOptions(path); err != nil {
			return opts, err
		}
	}
	if flags.Changed("noc-events") {
		opts.NocEventsEnabled = o.nocEvents
	}
	if flags.Changed("dispatch-cores") {
		opts.DoDispatchCores = o.dispatchCores
	}
	if flags.Changed("report-path") {
		opts.NocEventsReportPath = o.reportPath
	}
	if flags.Changed("logs-dir") {
		opts.LogsDir = o.logsDir
	}
	if flags.Changed("zone-src-log") {
		opts.ZoneSrcLocationsLog = o.zoneSrcLog
	}
	if flags.Changed("coalesce-window") {
		opts.CoalesceWindowCycles = o.coalesceWindow
	}
	return opts, nil
}

// loadOpNames reads an op names file into dump metadata.
// Uses strict field checking.
func loadOpNames(path string) (*profiler.OptionalMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading op names: %w", err)
	}
	var file OpNamesFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing op names %s: %w", path, err)
	}

	metadata := &profiler.OptionalMetadata{OpNames: make(map[profiler.RuntimeKey]string, len(file.Ops))}
	for _, op := range file.Ops {
		metadata.OpNames[profiler.RuntimeKey{ChipID: op.ChipID, RuntimeID: op.RuntimeID}] = op.Name
	}
	return metadata, nil
}
