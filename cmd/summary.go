package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devprof/devprof/profiler/summary"
)

var (
	pprofOutput string // pprof output path
	topZones    int    // Number of zones in the summary table
)

// renderSummary writes the zone statistics table of s to w, largest total
// first. top <= 0 prints every zone.
func renderSummary(w io.Writer, s *summary.Summary, top int) {
	zoneTable := table.NewWriter()
	zoneTable.SetOutputMirror(w)
	zoneTable.SetTitle(fmt.Sprintf("Device zones (%s, %d MHz)", s.Arch, s.FreqMHz))
	zoneTable.AppendHeader(table.Row{"Zone", "Count", "Total [ns]", "Mean [ns]", "P50 [ns]", "P99 [ns]", "Max [ns]"})
	zoneTable.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	zones := s.Zones
	if top > 0 && len(zones) > top {
		zones = zones[:top]
	}
	ns := func(cycles float64) string { return fmt.Sprintf("%.1f", s.Nanoseconds(cycles)) }
	for _, z := range zones {
		zoneTable.AppendRow(table.Row{
			z.Name,
			z.Count,
			ns(float64(z.TotalCycles)),
			ns(z.MeanCycles),
			ns(z.P50Cycles),
			ns(z.P99Cycles),
			ns(float64(z.MaxCycles)),
		})
	}
	zoneTable.AppendFooter(table.Row{"Unmatched", s.Unmatched})
	zoneTable.Render()
}

// writeProfileFile writes the pprof export of s to path.
func writeProfileFile(s *summary.Summary, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating profile: %w", err)
	}
	if err := s.WriteProfile(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func loadSummary(path string) *summary.Summary {
	log, err := summary.LoadDeviceLog(path)
	if err != nil {
		logrus.Fatalf("Failed to read device log: %v", err)
	}
	return summary.Summarize(log)
}

// summaryCmd prints per-zone statistics of a device log
var summaryCmd = &cobra.Command{
	Use:   "summary DEVICE_LOG",
	Short: "Summarize zone durations of a device CSV log",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSummary(args[0])
		if len(s.Zones) == 0 {
			logrus.Warnf("No complete zones in %s", args[0])
		}
		renderSummary(cmd.OutOrStdout(), s, topZones)
		if pprofOutput != "" {
			if err := writeProfileFile(s, pprofOutput); err != nil {
				logrus.Fatalf("Failed to write profile: %v", err)
			}
			logrus.Infof("Profile written to %s", pprofOutput)
		}
	},
}

// pprofCmd exports zone durations of a device log as a pprof profile
var pprofCmd = &cobra.Command{
	Use:   "pprof DEVICE_LOG OUTPUT",
	Short: "Export zone durations of a device CSV log as a pprof profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadSummary(args[0])
		if err := writeProfileFile(s, args[1]); err != nil {
			logrus.Fatalf("Failed to write profile: %v", err)
		}
	},
}

func init() {
	summaryCmd.Flags().StringVar(&pprofOutput, "pprof", "", "Also write zone durations as a pprof profile to this path")
	summaryCmd.Flags().IntVar(&topZones, "top", 0, "Only print the zones with the largest total time (0 prints all)")
}
