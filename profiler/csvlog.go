package profiler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// csvColumns is the second header line of the device CSV log.
const csvColumns = "PCIe slot, core_x, core_y, RISC processor type, timer_id, time[cycles since reset], data, " +
	"run host ID,  zone name, type, source line, source file, meta data"

// csvLog appends packet rows to the device CSV log.
type csvLog struct {
	file *os.File
	w    *bufio.Writer
}

// openCSVLog opens the log at path for append, writing the two header lines
// when the file is new.
func openCSVLog(path, arch string, freqMHz int) (*csvLog, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening device profiler log: %w", err)
	}
	l := &csvLog{file: file, w: bufio.NewWriter(file)}
	if fresh {
		fmt.Fprintf(l.w, "ARCH: %s, CHIP_FREQ[MHz]: %d\n", strings.ToLower(arch), freqMHz)
		fmt.Fprintln(l.w, csvColumns)
	}
	return l, nil
}

// csvRow is one packet of the device CSV log.
type csvRow struct {
	chip       int
	coreX      int
	coreY      int
	risc       string
	timerID    uint32
	timestamp  uint64
	data       uint64
	runHostID  uint32
	zoneName   string
	packetType string
	sourceLine uint64
	sourceFile string
	metadata   map[string]any
}

func (l *csvLog) write(r csvRow) {
	meta := ""
	if len(r.metadata) > 0 {
		if b, err := json.Marshal(r.metadata); err == nil {
			meta = strings.ReplaceAll(string(b), ",", ";")
		}
	}
	fmt.Fprintf(l.w, "%d,%d,%d,%s,%d,%d,%d,%d,%s,%s,%d,%s,%s\n",
		r.chip, r.coreX, r.coreY, r.risc, r.timerID, r.timestamp, r.data, r.runHostID,
		r.zoneName, r.packetType, r.sourceLine, r.sourceFile, meta)
}

// Close flushes buffered rows and closes the file.
func (l *csvLog) Close() error {
	flushErr := l.w.Flush()
	closeErr := l.file.Close()
	if flushErr != nil {
		return fmt.Errorf("writing device profiler log: %w", flushErr)
	}
	return closeErr
}
