// Package summary reads back the device CSV log and aggregates zone
// durations, for the summary table and the pprof export.
package summary

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	archPrefix    = "ARCH: "
	freqSeparator = ", CHIP_FREQ[MHz]: "
	logColumns    = 13
)

// Record is one packet row of the device CSV log.
type Record struct {
	ChipID     int
	CoreX      int
	CoreY      int
	Risc       string
	TimerID    uint32
	Timestamp  uint64
	Data       uint64
	RunHostID  uint32
	ZoneName   string
	Type       string
	SourceLine uint64
	SourceFile string
	Metadata   string
}

// Log is a parsed device CSV log.
type Log struct {
	Arch    string
	FreqMHz int
	Records []Record
}

// LoadDeviceLog reads the device CSV log at path.
func LoadDeviceLog(path string) (*Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening device log: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadDeviceLog(file)
}

// ReadDeviceLog parses a device CSV log: the ARCH line, the column header,
// then one row per packet.
func ReadDeviceLog(in io.Reader) (*Log, error) {
	br := bufio.NewReader(in)
	first, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading device log header: %w", err)
	}
	log := &Log{}
	if log.Arch, log.FreqMHz, err = parseArchLine(strings.TrimRight(first, "\r\n")); err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Skip column header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		if len(row) < logColumns-1 {
			return nil, fmt.Errorf("CSV row has %d columns, expected %d", len(row), logColumns)
		}
		r, err := parseRecord(row)
		if err != nil {
			return nil, err
		}
		log.Records = append(log.Records, *r)
	}
	return log, nil
}

func parseArchLine(line string) (string, int, error) {
	rest, ok := strings.CutPrefix(line, archPrefix)
	if !ok {
		return "", 0, fmt.Errorf("device log does not start with %q", archPrefix)
	}
	arch, freq, ok := strings.Cut(rest, freqSeparator)
	if !ok {
		return "", 0, fmt.Errorf("device log header %q has no chip frequency", line)
	}
	mhz, err := strconv.Atoi(strings.TrimSpace(freq))
	if err != nil {
		return "", 0, fmt.Errorf("parsing chip frequency: %w", err)
	}
	return arch, mhz, nil
}

func parseRecord(row []string) (*Record, error) {
	chip, err := strconv.Atoi(row[0])
	if err != nil {
		return nil, fmt.Errorf("parsing chip id %q: %w", row[0], err)
	}
	coreX, _ := strconv.Atoi(row[1])
	coreY, _ := strconv.Atoi(row[2])
	timerID, _ := strconv.ParseUint(row[4], 10, 32)
	timestamp, err := strconv.ParseUint(row[5], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", row[5], err)
	}
	data, _ := strconv.ParseUint(row[6], 10, 64)
	runHostID, _ := strconv.ParseUint(row[7], 10, 32)
	sourceLine, _ := strconv.ParseUint(row[10], 10, 64)

	metadata := ""
	if len(row) > 12 {
		metadata = row[12]
	}

	return &Record{
		ChipID:     chip,
		CoreX:      coreX,
		CoreY:      coreY,
		Risc:       row[3],
		TimerID:    uint32(timerID),
		Timestamp:  timestamp,
		Data:       data,
		RunHostID:  uint32(runHostID),
		ZoneName:   row[8],
		Type:       row[9],
		SourceLine: sourceLine,
		SourceFile: row[11],
		Metadata:   metadata,
	}, nil
}
