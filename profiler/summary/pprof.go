package summary

import (
	"fmt"
	"io"

	"github.com/google/pprof/profile"
)

type stackKey struct {
	chip, x, y int
	risc, zone string
}

// Profile converts the zone occurrences of s into a pprof profile. Each
// sample is a device/core/RISC/zone stack carrying the occurrence count and
// the total zone time in nanoseconds.
func (s *Summary) Profile() (*profile.Profile, error) {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "zones", Unit: "count"},
			{Type: "device_time", Unit: "nanoseconds"},
		},
		PeriodType:        &profile.ValueType{Type: "device_time", Unit: "nanoseconds"},
		Period:            1,
		DefaultSampleType: "device_time",
	}

	functions := make(map[string]*profile.Function)
	locations := make(map[string]*profile.Location)
	location := func(name, file string, line int64) *profile.Location {
		if loc, ok := locations[name]; ok {
			return loc
		}
		fn := &profile.Function{
			ID:         uint64(len(functions) + 1),
			Name:       name,
			SystemName: name,
			Filename:   file,
			StartLine:  line,
		}
		functions[name] = fn
		p.Function = append(p.Function, fn)
		loc := &profile.Location{
			ID:   uint64(len(locations) + 1),
			Line: []profile.Line{{Function: fn, Line: line}},
		}
		locations[name] = loc
		p.Location = append(p.Location, loc)
		return loc
	}

	samples := make(map[stackKey]*profile.Sample)
	var order []stackKey
	for _, o := range s.Occurrences {
		key := stackKey{chip: o.ChipID, x: o.CoreX, y: o.CoreY, risc: o.Risc, zone: o.ZoneName}
		sample, ok := samples[key]
		if !ok {
			device := fmt.Sprintf("Device %d", o.ChipID)
			core := fmt.Sprintf("%s Core (%d,%d)", device, o.CoreX, o.CoreY)
			risc := fmt.Sprintf("%s %s", core, o.Risc)
			sample = &profile.Sample{
				Location: []*profile.Location{
					location(o.ZoneName, o.SourceFile, int64(o.SourceLine)),
					location(risc, "", 0),
					location(core, "", 0),
					location(device, "", 0),
				},
				Value: make([]int64, 2),
				Label: map[string][]string{"risc": {o.Risc}},
			}
			samples[key] = sample
			order = append(order, key)
		}
		sample.Value[0]++
		sample.Value[1] += int64(s.Nanoseconds(float64(o.Cycles)))
	}
	for _, key := range order {
		p.Sample = append(p.Sample, samples[key])
	}

	if err := p.CheckValid(); err != nil {
		return nil, fmt.Errorf("building zone profile: %w", err)
	}
	return p, nil
}

// WriteProfile writes the gzipped pprof encoding of s to w.
func (s *Summary) WriteProfile(w io.Writer) error {
	p, err := s.Profile()
	if err != nil {
		return err
	}
	if err := p.Write(w); err != nil {
		return fmt.Errorf("writing zone profile: %w", err)
	}
	return nil
}
