// Package device defines the host-side view of an accelerator chip that the
// profiler reads from: core coordinates, the cluster and HAL capabilities, and
// the command queues used by fast dispatch.
package device

import (
	"context"
	"fmt"

	"github.com/devprof/devprof/profiler/protocol"
)

// CoreCoord is a core location on a chip grid.
type CoreCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (c CoreCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CoreType is the programmable core kind.
type CoreType int

const (
	Tensix CoreType = iota
	ActiveEth
	IdleEth
	DRAM
)

var coreTypeNames = map[CoreType]string{
	Tensix:    "TENSIX",
	ActiveEth: "ACTIVE_ETH",
	IdleEth:   "IDLE_ETH",
	DRAM:      "DRAM",
}

func (t CoreType) String() string {
	return coreTypeNames[t]
}

// ParseCoreType is the case-sensitive inverse of CoreType.String.
func ParseCoreType(s string) (CoreType, error) {
	for t, name := range coreTypeNames {
		if name == s {
			return t, nil
		}
	}
	return Tensix, fmt.Errorf("unknown core type %q", s)
}

// CoordSystem names a coordinate space of the SoC descriptor.
type CoordSystem int

const (
	Translated CoordSystem = iota
	Physical
)

// SocDescriptor translates between coordinate systems of one chip.
type SocDescriptor interface {
	TranslateCoord(c CoreCoord, from, to CoordSystem) (CoreCoord, error)
}

// FabricRouter is an ethernet core carrying a fabric channel, in physical
// coordinates.
type FabricRouter struct {
	Core    CoreCoord `yaml:"core"`
	Channel uint8     `yaml:"channel"`
}

// Device is one chip as seen by the profiler.
type Device interface {
	ID() int
	// DRAMGridSize is the logical grid of DRAM cores walked by fast dispatch.
	DRAMGridSize() CoreCoord
	NumDRAMChannels() int
	// VirtualDRAMCore maps a logical DRAM grid location to its virtual core.
	VirtualDRAMCore(logical CoreCoord) CoreCoord
	// ProfilerBankSizeBytes is the profiler region size of one DRAM bank.
	ProfilerBankSizeBytes() uint32
	// CommandQueue returns the device command queue, or nil when the device
	// belongs to a mesh.
	CommandQueue() CommandQueue
	// MeshDevice returns the owning mesh, or nil.
	MeshDevice() MeshDevice
}

// CommandQueue is the fast-dispatch queue of a single device. Blocking calls
// return after the transfer completed.
type CommandQueue interface {
	EnqueueReadFromCore(ctx context.Context, core CoreCoord, dst []uint32, addr uint64, size uint32, blocking bool) error
	EnqueueWriteToCore(ctx context.Context, core CoreCoord, src []uint32, addr uint64, size uint32, blocking bool) error
}

// MeshCoordinate locates a device within a mesh.
type MeshCoordinate struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// DeviceMemoryAddress is a core-local address on one device of a mesh.
type DeviceMemoryAddress struct {
	Coord   MeshCoordinate
	Core    CoreCoord
	Address uint64
}

// MeshCommandQueue is the fast-dispatch queue of a mesh.
type MeshCommandQueue interface {
	EnqueueReadShardFromCore(ctx context.Context, addr DeviceMemoryAddress, dst []uint32, size uint32, blocking bool) error
	EnqueueWriteShardToCore(ctx context.Context, addr DeviceMemoryAddress, src []uint32, size uint32, blocking bool) error
}

// MeshDevice is a group of devices sharing one command queue.
type MeshDevice interface {
	FindDevice(id int) (MeshCoordinate, bool)
	MeshCommandQueue() MeshCommandQueue
}

// Cluster is the slow-dispatch path: direct reads and writes of core and
// DRAM memory, plus per-chip facts the profiler needs.
type Cluster interface {
	ReadCore(ctx context.Context, chip int, core CoreCoord, addr uint64, size uint32) ([]uint32, error)
	WriteCore(ctx context.Context, chip int, core CoreCoord, addr uint64, words []uint32) error
	ReadDRAM(ctx context.Context, chip, channel int, addr uint64, dst []uint32) error
	// AICLK is the chip core clock in MHz.
	AICLK(chip int) int
	// ProfilerFlatID is the index of a core's slice in the DRAM profile buffer.
	ProfilerFlatID(chip int, core CoreCoord) (uint32, bool)
	CoreType(chip int, core CoreCoord) CoreType
	SocDescriptor(chip int) SocDescriptor
	FabricRouters(chip int) []FabricRouter
}

// HAL exposes per-architecture addresses and counts.
type HAL interface {
	ProfilerControlAddress(t CoreType) uint64
	ProfilerBufferAddress(t CoreType) uint64
	ProfilerDRAMAddress() uint64
	NumRiscProcessors(t CoreType) int
	VirtualWorkerStart() CoreCoord
	CoordinateVirtualizationEnabled() bool
	Layout() protocol.Layout
}
