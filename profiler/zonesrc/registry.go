// Package zonesrc maps the 16-bit zone hashes carried in profiler packets back
// to the source locations that the firmware build logged at compile time.
package zonesrc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	fnvBasis uint32 = 2166136261
	fnvPrime uint32 = 16777619

	pragmaDelimiter = "'#pragma message: "
)

// Hash32 is the 32-bit FNV-1a hash the firmware computes at compile time.
func Hash32(s string) uint32 {
	h := fnvBasis
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * fnvPrime
	}
	return h
}

// Hash16 folds Hash32 to the 16 bits that fit in a packet timer id.
func Hash16(s string) uint16 {
	h := Hash32(s)
	return uint16((h & 0xFFFF) ^ (h >> 16))
}

// ZoneDetails is the source location of an instrumented zone.
type ZoneDetails struct {
	ZoneName   string
	SourceFile string
	SourceLine uint64
	// InBriscOrErisc marks firmware-level zones, which keep their run id.
	InBriscOrErisc bool
}

// Unidentified is returned for hashes with no logged source location.
var Unidentified = ZoneDetails{ZoneName: "Unidentified"}

// Registry resolves zone hashes. The zero value is not usable; use New.
type Registry struct {
	byHash    map[uint16]ZoneDetails
	locations map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byHash:    make(map[uint16]ZoneDetails),
		locations: make(map[string]struct{}),
	}
}

// Load parses the compile-time source location log at path. A missing log
// yields an empty registry and a warning.
func Load(path string) (*Registry, error) {
	r := New()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Warnf("zone source location log %q not found; zones will be unidentified", path)
			return r, nil
		}
		return nil, fmt.Errorf("opening zone source location log: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := r.Parse(file); err != nil {
		return nil, fmt.Errorf("reading zone source location log %s: %w", path, err)
	}
	return r, nil
}

// Parse reads pragma-message lines of the form
// `...'#pragma message: ZONE_NAME,FILE,LINE'` and registers each location.
func (r *Registry) Parse(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, pragmaDelimiter)
		if idx < 0 {
			continue
		}
		start := idx + len(pragmaDelimiter)
		if len(line)-1 <= start {
			continue
		}
		if err := r.Add(line[start : len(line)-1]); err != nil {
			logrus.Warnf("skipping zone source location %q: %v", line[start:len(line)-1], err)
		}
	}
	return scanner.Err()
}

// Add registers one "ZONE_NAME,FILE,LINE" location. On a hash collision
// between distinct locations the most recent one wins.
func (r *Registry) Add(location string) error {
	parts := strings.SplitN(location, ",", 4)
	if len(parts) < 3 {
		return fmt.Errorf("expected ZONE_NAME,FILE,LINE, got %d fields", len(parts))
	}
	lineNum, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing source line: %w", err)
	}

	hash := Hash16(location)
	if _, seen := r.locations[location]; !seen {
		r.locations[location] = struct{}{}
		if _, taken := r.byHash[hash]; taken {
			logrus.Warnf("Source location hashes are colliding, two different locations are having the same hash (0x%04x, %q)",
				hash, location)
		}
	}

	name := parts[0]
	r.byHash[hash] = ZoneDetails{
		ZoneName:       name,
		SourceFile:     parts[1],
		SourceLine:     lineNum,
		InBriscOrErisc: strings.Contains(name, "BRISC-FW") || strings.Contains(name, "ERISC-FW"),
	}
	return nil
}

// Lookup returns the details of a zone hash, or Unidentified.
func (r *Registry) Lookup(hash uint16) ZoneDetails {
	if r == nil {
		return Unidentified
	}
	if d, ok := r.byHash[hash]; ok {
		return d
	}
	return Unidentified
}

// Len returns the number of distinct hashes registered.
func (r *Registry) Len() int {
	return len(r.byHash)
}
