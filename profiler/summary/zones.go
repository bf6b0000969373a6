package summary

import (
	"cmp"
	"math"
	"slices"
)

// Occurrence is one matched zone start/end pair.
type Occurrence struct {
	ChipID     int
	CoreX      int
	CoreY      int
	Risc       string
	ZoneName   string
	RunHostID  uint32
	SourceFile string
	SourceLine uint64
	Start      uint64
	Cycles     uint64
}

// ZoneStats aggregates the occurrences of one zone name. Durations are in
// cycles.
type ZoneStats struct {
	Name        string
	Count       int
	TotalCycles uint64
	MeanCycles  float64
	P50Cycles   float64
	P99Cycles   float64
	MaxCycles   uint64
}

// Summary aggregates the zones of a device log.
type Summary struct {
	Arch        string
	FreqMHz     int
	Zones       []ZoneStats
	Occurrences []Occurrence
	// Unmatched counts zone boundaries with no partner.
	Unmatched int
}

type openKey struct {
	chip, x, y int
	risc, zone string
	run        uint32
}

// Summarize pairs the zone starts and ends of log and aggregates them per
// zone name, largest total first. Safe for nil or empty logs.
func Summarize(log *Log) *Summary {
	summary := &Summary{}
	if log == nil {
		return summary
	}
	summary.Arch, summary.FreqMHz = log.Arch, log.FreqMHz

	records := slices.Clone(log.Records)
	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})

	open := make(map[openKey][]Record)
	for _, r := range records {
		key := openKey{chip: r.ChipID, x: r.CoreX, y: r.CoreY, risc: r.Risc, zone: r.ZoneName, run: r.RunHostID}
		switch r.Type {
		case "ZONE_START":
			open[key] = append(open[key], r)
		case "ZONE_END":
			stack := open[key]
			if len(stack) == 0 {
				summary.Unmatched++
				continue
			}
			start := stack[len(stack)-1]
			open[key] = stack[:len(stack)-1]
			summary.Occurrences = append(summary.Occurrences, Occurrence{
				ChipID:     r.ChipID,
				CoreX:      r.CoreX,
				CoreY:      r.CoreY,
				Risc:       r.Risc,
				ZoneName:   r.ZoneName,
				RunHostID:  r.RunHostID,
				SourceFile: start.SourceFile,
				SourceLine: start.SourceLine,
				Start:      start.Timestamp,
				Cycles:     r.Timestamp - start.Timestamp,
			})
		}
	}
	for _, stack := range open {
		summary.Unmatched += len(stack)
	}

	byName := make(map[string][]uint64)
	for _, o := range summary.Occurrences {
		byName[o.ZoneName] = append(byName[o.ZoneName], o.Cycles)
	}
	for name, cycles := range byName {
		slices.Sort(cycles)
		stats := ZoneStats{
			Name:       name,
			Count:      len(cycles),
			MeanCycles: mean(cycles),
			P50Cycles:  percentile(cycles, 50),
			P99Cycles:  percentile(cycles, 99),
			MaxCycles:  cycles[len(cycles)-1],
		}
		for _, c := range cycles {
			stats.TotalCycles += c
		}
		summary.Zones = append(summary.Zones, stats)
	}
	slices.SortFunc(summary.Zones, func(a, b ZoneStats) int {
		if c := cmp.Compare(b.TotalCycles, a.TotalCycles); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return summary
}

// Nanoseconds converts a cycle count at the log's chip frequency.
func (s *Summary) Nanoseconds(cycles float64) float64 {
	if s.FreqMHz == 0 {
		return 0
	}
	return cycles * 1000 / float64(s.FreqMHz)
}

// percentile interpolates the p-th percentile of sorted data.
func percentile(data []uint64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if lowerIdx == upperIdx || upperIdx >= n {
		return float64(data[lowerIdx])
	}
	lowerVal, upperVal := float64(data[lowerIdx]), float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

func mean(data []uint64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += float64(v)
	}
	return sum / float64(len(data))
}
