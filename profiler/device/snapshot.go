package device

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/devprof/devprof/profiler/protocol"
)

// ManifestFile is the name of the snapshot manifest inside a snapshot directory.
const ManifestFile = "snapshot.yaml"

// L1Addresses are the core-local profiler addresses of one core type.
type L1Addresses struct {
	Control uint64 `yaml:"control"`
	Buffer  uint64 `yaml:"buffer"`
}

// CoreEntry describes one profiled core.
type CoreEntry struct {
	Core   CoreCoord `yaml:"core"`
	Type   string    `yaml:"type"`
	FlatID uint32    `yaml:"flat_id"`
}

// Translation pairs a translated coordinate with its physical location.
type Translation struct {
	Translated CoreCoord `yaml:"translated"`
	Physical   CoreCoord `yaml:"physical"`
}

// MemoryRegion is a block of core-local memory stored in a word file.
type MemoryRegion struct {
	Core    CoreCoord `yaml:"core"`
	Address uint64    `yaml:"address"`
	File    string    `yaml:"file"`
}

// DRAMRegion is a block of one DRAM channel stored in a word file.
type DRAMRegion struct {
	Channel int    `yaml:"channel"`
	Address uint64 `yaml:"address"`
	File    string `yaml:"file"`
}

// Manifest is the YAML description of a captured device.
type Manifest struct {
	ChipID                int                    `yaml:"chip_id"`
	Arch                  string                 `yaml:"arch"`
	AICLKMHz              int                    `yaml:"aiclk_mhz"`
	DispatchActive        bool                   `yaml:"dispatch_active"`
	VirtualizationEnabled bool                   `yaml:"virtualization_enabled"`
	VirtualWorkerStart    CoreCoord              `yaml:"virtual_worker_start"`
	DRAMGrid              CoreCoord              `yaml:"dram_grid"`
	DRAMCores             []CoreCoord            `yaml:"dram_cores"`
	ProfilerDRAMAddress   uint64                 `yaml:"profiler_dram_address"`
	BankSizeBytes         uint32                 `yaml:"bank_size_bytes"`
	Layout                *protocol.Layout       `yaml:"layout,omitempty"`
	ProfilerL1            map[string]L1Addresses `yaml:"profiler_l1"`
	Cores                 []CoreEntry            `yaml:"cores"`
	Translation           []Translation          `yaml:"translation,omitempty"`
	FabricRouters         []FabricRouter         `yaml:"fabric_routers,omitempty"`
	Mesh                  *MeshCoordinate        `yaml:"mesh,omitempty"`
	Memory                []MemoryRegion         `yaml:"memory,omitempty"`
	DRAM                  []DRAMRegion           `yaml:"dram,omitempty"`
}

type region struct {
	addr  uint64
	words []uint32
}

// memory is sparse word-addressed storage. Unwritten words read as zero;
// later regions shadow earlier ones.
type memory struct {
	regions []region
}

func (m *memory) read(addr uint64, dst []uint32) {
	clear(dst)
	end := addr + uint64(len(dst))*4
	for _, r := range m.regions {
		rEnd := r.addr + uint64(len(r.words))*4
		if rEnd <= addr || r.addr >= end {
			continue
		}
		lo := max(addr, r.addr)
		hi := min(end, rEnd)
		copy(dst[(lo-addr)/4:(hi-addr)/4], r.words[(lo-r.addr)/4:(hi-r.addr)/4])
	}
}

func (m *memory) write(addr uint64, src []uint32) {
	end := addr + uint64(len(src))*4
	for _, r := range m.regions {
		if addr >= r.addr && end <= r.addr+uint64(len(r.words))*4 {
			copy(r.words[(addr-r.addr)/4:], src)
			return
		}
	}
	m.regions = append(m.regions, region{addr: addr, words: append([]uint32(nil), src...)})
}

// Snapshot is a captured device backed by in-memory words. It implements
// Device, Cluster, HAL, SocDescriptor and both command queue kinds, so a
// dump can be replayed through every read path offline.
type Snapshot struct {
	manifest Manifest

	mu        sync.Mutex
	l1        map[CoreCoord]*memory
	dram      map[int]*memory
	dramIndex map[CoreCoord]int
	cores     map[CoreCoord]CoreEntry
	toPhys    map[CoreCoord]CoreCoord
	toVirt    map[CoreCoord]CoreCoord
}

// NewSnapshot returns an empty snapshot described by m. Memory regions named
// in m are not loaded; see LoadSnapshot.
func NewSnapshot(m Manifest) *Snapshot {
	s := &Snapshot{
		manifest:  m,
		l1:        make(map[CoreCoord]*memory),
		dram:      make(map[int]*memory),
		dramIndex: make(map[CoreCoord]int),
		cores:     make(map[CoreCoord]CoreEntry),
		toPhys:    make(map[CoreCoord]CoreCoord),
		toVirt:    make(map[CoreCoord]CoreCoord),
	}
	for i, c := range m.DRAMCores {
		s.dramIndex[c] = i
	}
	for _, c := range m.Cores {
		s.cores[c.Core] = c
	}
	for _, t := range m.Translation {
		s.toPhys[t.Translated] = t.Physical
		s.toVirt[t.Physical] = t.Translated
	}
	return s
}

// LoadSnapshot reads the manifest and word files of the snapshot in dir.
func LoadSnapshot(dir string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot manifest: %w", err)
	}
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing snapshot manifest: %w", err)
	}
	for _, c := range m.Cores {
		if _, err := ParseCoreType(c.Type); err != nil {
			return nil, fmt.Errorf("core %s: %w", c.Core, err)
		}
	}

	s := NewSnapshot(m)
	for _, r := range m.Memory {
		words, err := readWordFile(filepath.Join(dir, r.File))
		if err != nil {
			return nil, err
		}
		s.WriteCoreWords(r.Core, r.Address, words)
	}
	for _, r := range m.DRAM {
		words, err := readWordFile(filepath.Join(dir, r.File))
		if err != nil {
			return nil, err
		}
		s.WriteDRAMWords(r.Channel, r.Address, words)
	}
	logrus.Debugf("loaded snapshot of chip %d: %d cores, %d memory regions, %d dram regions",
		m.ChipID, len(m.Cores), len(m.Memory), len(m.DRAM))
	return s, nil
}

// Save writes the manifest and every memory region to dir. Region entries in
// the saved manifest are regenerated from the snapshot contents.
func (s *Snapshot) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.manifest
	m.Memory, m.DRAM = nil, nil
	for core, mem := range s.l1 {
		for i, r := range mem.regions {
			name := fmt.Sprintf("l1_%d_%d_%d.bin", core.X, core.Y, i)
			if err := writeWordFile(filepath.Join(dir, name), r.words); err != nil {
				return err
			}
			m.Memory = append(m.Memory, MemoryRegion{Core: core, Address: r.addr, File: name})
		}
	}
	for ch, mem := range s.dram {
		for i, r := range mem.regions {
			name := fmt.Sprintf("dram_%d_%d.bin", ch, i)
			if err := writeWordFile(filepath.Join(dir, name), r.words); err != nil {
				return err
			}
			m.DRAM = append(m.DRAM, DRAMRegion{Channel: ch, Address: r.addr, File: name})
		}
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling snapshot manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot manifest: %w", err)
	}
	return nil
}

func readWordFile(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word file: %w", err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("word file %s has %d bytes, not a multiple of 4", path, len(data))
	}
	words := make([]uint32, len(data)/4)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, words); err != nil {
		return nil, fmt.Errorf("decoding word file %s: %w", path, err)
	}
	return words, nil
}

func writeWordFile(path string, words []uint32) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, words); err != nil {
		return fmt.Errorf("encoding word file %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing word file: %w", err)
	}
	return nil
}

// Manifest returns the snapshot description.
func (s *Snapshot) Manifest() Manifest { return s.manifest }

// Arch is the chip architecture name.
func (s *Snapshot) Arch() string { return s.manifest.Arch }

// DispatchActive reports whether dispatch firmware was running at capture.
func (s *Snapshot) DispatchActive() bool { return s.manifest.DispatchActive }

// Cores lists the profiled cores in manifest order.
func (s *Snapshot) Cores() []CoreCoord {
	cores := make([]CoreCoord, 0, len(s.manifest.Cores))
	for _, c := range s.manifest.Cores {
		cores = append(cores, c.Core)
	}
	return cores
}

// WriteCoreWords stores words at a core-local address. DRAM cores map to
// their channel.
func (s *Snapshot) WriteCoreWords(core CoreCoord, addr uint64, words []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coreMemory(core).write(addr, words)
}

// ReadCoreWords returns n words at a core-local address.
func (s *Snapshot) ReadCoreWords(core CoreCoord, addr uint64, n int) []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	words := make([]uint32, n)
	s.coreMemory(core).read(addr, words)
	return words
}

// WriteDRAMWords stores words at an address of a DRAM channel.
func (s *Snapshot) WriteDRAMWords(channel int, addr uint64, words []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dramMemory(channel).write(addr, words)
}

func (s *Snapshot) coreMemory(core CoreCoord) *memory {
	if ch, ok := s.dramIndex[core]; ok {
		return s.dramMemory(ch)
	}
	mem, ok := s.l1[core]
	if !ok {
		mem = &memory{}
		s.l1[core] = mem
	}
	return mem
}

func (s *Snapshot) dramMemory(channel int) *memory {
	mem, ok := s.dram[channel]
	if !ok {
		mem = &memory{}
		s.dram[channel] = mem
	}
	return mem
}

func (s *Snapshot) checkChip(chip int) error {
	if chip != s.manifest.ChipID {
		return fmt.Errorf("snapshot holds chip %d, not %d", s.manifest.ChipID, chip)
	}
	return nil
}

// Device

func (s *Snapshot) ID() int { return s.manifest.ChipID }

func (s *Snapshot) DRAMGridSize() CoreCoord { return s.manifest.DRAMGrid }

func (s *Snapshot) NumDRAMChannels() int { return len(s.manifest.DRAMCores) }

func (s *Snapshot) VirtualDRAMCore(logical CoreCoord) CoreCoord {
	i := logical.X*s.manifest.DRAMGrid.Y + logical.Y
	if i < 0 || i >= len(s.manifest.DRAMCores) {
		return logical
	}
	return s.manifest.DRAMCores[i]
}

func (s *Snapshot) ProfilerBankSizeBytes() uint32 { return s.manifest.BankSizeBytes }

func (s *Snapshot) CommandQueue() CommandQueue {
	if s.manifest.Mesh != nil {
		return nil
	}
	return s
}

func (s *Snapshot) MeshDevice() MeshDevice {
	if s.manifest.Mesh == nil {
		return nil
	}
	return s
}

// CommandQueue

func (s *Snapshot) EnqueueReadFromCore(ctx context.Context, core CoreCoord, dst []uint32, addr uint64, size uint32, _ bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coreMemory(core).read(addr, dst[:size/4])
	return nil
}

func (s *Snapshot) EnqueueWriteToCore(ctx context.Context, core CoreCoord, src []uint32, addr uint64, size uint32, _ bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coreMemory(core).write(addr, src[:size/4])
	return nil
}

// MeshDevice and MeshCommandQueue

func (s *Snapshot) FindDevice(id int) (MeshCoordinate, bool) {
	if s.manifest.Mesh == nil || id != s.manifest.ChipID {
		return MeshCoordinate{}, false
	}
	return *s.manifest.Mesh, true
}

func (s *Snapshot) MeshCommandQueue() MeshCommandQueue { return s }

func (s *Snapshot) EnqueueReadShardFromCore(ctx context.Context, addr DeviceMemoryAddress, dst []uint32, size uint32, blocking bool) error {
	if coord, _ := s.FindDevice(s.manifest.ChipID); coord != addr.Coord {
		return fmt.Errorf("no device at mesh coordinate %v", addr.Coord)
	}
	return s.EnqueueReadFromCore(ctx, addr.Core, dst, addr.Address, size, blocking)
}

func (s *Snapshot) EnqueueWriteShardToCore(ctx context.Context, addr DeviceMemoryAddress, src []uint32, size uint32, blocking bool) error {
	if coord, _ := s.FindDevice(s.manifest.ChipID); coord != addr.Coord {
		return fmt.Errorf("no device at mesh coordinate %v", addr.Coord)
	}
	return s.EnqueueWriteToCore(ctx, addr.Core, src, addr.Address, size, blocking)
}

// Cluster

func (s *Snapshot) ReadCore(ctx context.Context, chip int, core CoreCoord, addr uint64, size uint32) ([]uint32, error) {
	if err := s.checkChip(chip); err != nil {
		return nil, err
	}
	words := make([]uint32, size/4)
	if err := s.EnqueueReadFromCore(ctx, core, words, addr, size, true); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Snapshot) WriteCore(ctx context.Context, chip int, core CoreCoord, addr uint64, words []uint32) error {
	if err := s.checkChip(chip); err != nil {
		return err
	}
	return s.EnqueueWriteToCore(ctx, core, words, addr, uint32(len(words)*4), true)
}

func (s *Snapshot) ReadDRAM(ctx context.Context, chip, channel int, addr uint64, dst []uint32) error {
	if err := s.checkChip(chip); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if channel < 0 || channel >= s.NumDRAMChannels() {
		return fmt.Errorf("dram channel %d out of range [0,%d)", channel, s.NumDRAMChannels())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dramMemory(channel).read(addr, dst)
	return nil
}

func (s *Snapshot) AICLK(int) int { return s.manifest.AICLKMHz }

func (s *Snapshot) ProfilerFlatID(chip int, core CoreCoord) (uint32, bool) {
	if chip != s.manifest.ChipID {
		return 0, false
	}
	c, ok := s.cores[core]
	return c.FlatID, ok
}

func (s *Snapshot) CoreType(_ int, core CoreCoord) CoreType {
	c, ok := s.cores[core]
	if !ok {
		return Tensix
	}
	t, _ := ParseCoreType(c.Type)
	return t
}

func (s *Snapshot) SocDescriptor(int) SocDescriptor { return s }

func (s *Snapshot) FabricRouters(chip int) []FabricRouter {
	if chip != s.manifest.ChipID {
		return nil
	}
	return s.manifest.FabricRouters
}

// SocDescriptor

func (s *Snapshot) TranslateCoord(c CoreCoord, from, to CoordSystem) (CoreCoord, error) {
	if from == to {
		return c, nil
	}
	table := s.toPhys
	if from == Physical {
		table = s.toVirt
	}
	out, ok := table[c]
	if !ok {
		return c, fmt.Errorf("no translation for core %s", c)
	}
	return out, nil
}

// HAL

func (s *Snapshot) ProfilerControlAddress(t CoreType) uint64 {
	return s.manifest.ProfilerL1[t.String()].Control
}

func (s *Snapshot) ProfilerBufferAddress(t CoreType) uint64 {
	return s.manifest.ProfilerL1[t.String()].Buffer
}

func (s *Snapshot) ProfilerDRAMAddress() uint64 { return s.manifest.ProfilerDRAMAddress }

func (s *Snapshot) NumRiscProcessors(t CoreType) int {
	if t == Tensix {
		return protocol.MaxRiscPerCore
	}
	return 1
}

func (s *Snapshot) VirtualWorkerStart() CoreCoord { return s.manifest.VirtualWorkerStart }

func (s *Snapshot) CoordinateVirtualizationEnabled() bool { return s.manifest.VirtualizationEnabled }

func (s *Snapshot) Layout() protocol.Layout {
	if s.manifest.Layout != nil {
		return *s.manifest.Layout
	}
	return protocol.DefaultLayout()
}
