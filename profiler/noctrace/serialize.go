package noctrace

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Bin groups events by run host id, keeping input order within a run.
func Bin(events []Event) map[uint32][]Event {
	bins := make(map[uint32][]Event)
	for _, ev := range events {
		bins[ev.RunHostID] = append(bins[ev.RunHostID], ev)
	}
	return bins
}

func compareOrder(a, b Event) int {
	if c := cmp.Compare(a.SX, b.SX); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SY, b.SY); c != 0 {
		return c
	}
	if c := strings.Compare(a.Proc, b.Proc); c != 0 {
		return c
	}
	return cmp.Compare(a.Timestamp, b.Timestamp)
}

// SortRun orders one run by source core, processor, then timestamp. Ties
// keep their input order.
func SortRun(events []Event) {
	slices.SortStableFunc(events, compareOrder)
}

type groupKey struct {
	sx, sy int
	proc   string
}

// Rebase makes timestamps relative to the most recent kernel begin of the
// same (sx, sy, proc) group. Events preceding any kernel begin in their group
// are left unchanged. events must be sorted with SortRun.
func Rebase(events []Event) {
	var (
		group     groupKey
		reference uint64
	)
	for i := range events {
		ev := &events[i]
		if key := (groupKey{ev.SX, ev.SY, ev.Proc}); i == 0 || key != group {
			group = key
			reference = 0
		}
		if strings.HasSuffix(ev.Zone, "-KERNEL") && ev.ZonePhase == "begin" {
			reference = ev.Timestamp
		}
		ev.Timestamp -= reference
	}
}

// FileName is the trace file name of one run.
func FileName(deviceID int, opName string, runtimeID uint32) string {
	if opName == "" {
		return fmt.Sprintf("noc_trace_dev%d_ID%d.json", deviceID, runtimeID)
	}
	return fmt.Sprintf("noc_trace_dev%d_%s_ID%d.json", deviceID, opName, runtimeID)
}

// Serialize writes one JSON file per run into outDir: events binned by run,
// sorted, rebased and coalesced. Filesystem failures are logged, never
// returned. It returns the paths written.
func Serialize(events []Event, outDir string, cfg Config) []string {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		logrus.Errorf("Could not write noc event json trace to '%s' because the directory path could not be created: %v",
			outDir, err)
		return nil
	}

	bins := Bin(events)
	runtimeIDs := make([]uint32, 0, len(bins))
	for id := range bins {
		runtimeIDs = append(runtimeIDs, id)
	}
	slices.Sort(runtimeIDs)

	logrus.Infof("Writing profiler noc traces to '%s'", outDir)
	var written []string
	for _, id := range runtimeIDs {
		run := bins[id]
		opName := run[0].OpName
		SortRun(run)
		Rebase(run)
		coalesced := Coalesce(run, cfg)

		path := filepath.Join(outDir, FileName(cfg.DeviceID, opName, id))
		data, err := json.MarshalIndent(coalesced, "", "  ")
		if err != nil {
			logrus.Errorf("Could not encode noc event json trace for run %d: %v", id, err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			logrus.Errorf("Could not write noc event json trace to '%s': %v", path, err)
			continue
		}
		written = append(written, path)
	}
	return written
}
