package protocol

// Layout describes the geometry of the profiler data buffers. The firmware
// build fixes these values; DefaultLayout matches the shipped firmware.
type Layout struct {
	// L1VectorSize is the per-RISC u32 count of the core-local buffer.
	L1VectorSize uint32 `yaml:"l1_vector_size"`
	// FullHostVectorSizePerRisc is the per-RISC u32 count of a DRAM slice.
	FullHostVectorSizePerRisc uint32 `yaml:"full_host_vector_size_per_risc"`
}

const (
	programIDCount        = 2
	guaranteedMarkerCount = 4
	optionalMarkerCount   = 250
	opSupportCount        = 1000
	defaultL1VectorSize   = (optionalMarkerCount + guaranteedMarkerCount + programIDCount) * MarkerWords
	defaultHostVectorSize = defaultL1VectorSize * opSupportCount
)

// DefaultLayout returns the firmware buffer geometry.
func DefaultLayout() Layout {
	return Layout{
		L1VectorSize:              defaultL1VectorSize,
		FullHostVectorSizePerRisc: defaultHostVectorSize,
	}
}

// L1BufferSize is the per-RISC core-local buffer size in bytes.
func (l Layout) L1BufferSize() uint32 {
	return l.L1VectorSize * 4
}

// DRAMSliceStart is the u32 offset of a RISC's slice in the concatenated
// DRAM profile buffer.
func (l Layout) DRAMSliceStart(coreFlatID, risc uint32) uint32 {
	return risc*l.FullHostVectorSizePerRisc + coreFlatID*MaxRiscPerCore*l.FullHostVectorSizePerRisc
}

// L1SliceStart is the u32 offset of a RISC's slice in a core-local buffer.
func (l Layout) L1SliceStart(risc uint32) uint32 {
	return risc * l.L1VectorSize
}
