package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devprof/devprof/profiler/summary"
)

func testSummary() *summary.Summary {
	return &summary.Summary{
		Arch:    "wormhole_b0",
		FreqMHz: 1000,
		Zones: []summary.ZoneStats{
			{Name: "BRISC-FW", Count: 2, TotalCycles: 600, MeanCycles: 300, P50Cycles: 300, P99Cycles: 398, MaxCycles: 400},
			{Name: "NCRISC-FW", Count: 1, TotalCycles: 200, MeanCycles: 200, P50Cycles: 200, P99Cycles: 200, MaxCycles: 200},
		},
		Occurrences: []summary.Occurrence{
			{CoreX: 1, CoreY: 1, Risc: "BRISC", ZoneName: "BRISC-FW", Cycles: 400},
			{CoreX: 2, CoreY: 1, Risc: "BRISC", ZoneName: "BRISC-FW", Cycles: 200},
			{CoreX: 1, CoreY: 1, Risc: "NCRISC", ZoneName: "NCRISC-FW", Cycles: 200},
		},
		Unmatched: 1,
	}
}

func TestRenderSummary_ZoneTable(t *testing.T) {
	// GIVEN a summary of two zones
	var buf bytes.Buffer

	// WHEN rendered
	renderSummary(&buf, testSummary(), 0)

	// THEN every zone row is printed in nanoseconds with the title and footer
	output := buf.String()
	assert.Contains(t, output, "Device zones (wormhole_b0, 1000 MHz)")
	assert.Contains(t, output, "BRISC-FW")
	assert.Contains(t, output, "NCRISC-FW")
	assert.Contains(t, output, "600.0")
	assert.Contains(t, output, "398.0")
	assert.Contains(t, strings.ToUpper(output), "UNMATCHED")
}

func TestRenderSummary_TopLimitsRows(t *testing.T) {
	var buf bytes.Buffer

	renderSummary(&buf, testSummary(), 1)

	assert.Contains(t, buf.String(), "BRISC-FW")
	assert.NotContains(t, buf.String(), "NCRISC-FW")
}

func TestWriteProfileFile(t *testing.T) {
	// GIVEN a summary and an output path
	path := filepath.Join(t.TempDir(), "zones.pb.gz")

	// WHEN the profile is written
	require.NoError(t, writeProfileFile(testSummary(), path))

	// THEN the file parses as a pprof profile with one sample per core/RISC/zone
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	p, err := profile.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, p.Sample, 3)
}

func TestWriteProfileFile_BadPath(t *testing.T) {
	err := writeProfileFile(testSummary(), filepath.Join(t.TempDir(), "missing", "zones.pb.gz"))
	assert.Error(t, err)
}
