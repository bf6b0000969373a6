package profiler

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devprof/devprof/profiler/device"
	"github.com/devprof/devprof/profiler/protocol"
)

type mockPlatform struct {
	dev     *MockDevice
	cq      *MockCommandQueue
	cluster *MockCluster
	hal     *MockHAL
}

func newMockProfiler(t *testing.T, dispatchActive bool, opts Options) (*DeviceProfiler, mockPlatform) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mockPlatform{
		dev:     NewMockDevice(ctrl),
		cq:      NewMockCommandQueue(ctrl),
		cluster: NewMockCluster(ctrl),
		hal:     NewMockHAL(ctrl),
	}
	m.dev.EXPECT().ID().Return(0).AnyTimes()
	m.hal.EXPECT().Layout().Return(protocol.DefaultLayout())

	opts.LogsDir = t.TempDir()
	p, err := New(Platform{
		Cluster:        m.cluster,
		HAL:            m.hal,
		DispatchActive: dispatchActive,
		Options:        opts,
	}, m.dev, false)
	require.NoError(t, err)
	return p, m
}

func TestReadControlBuffer_PathSelection(t *testing.T) {
	core := device.CoreCoord{X: 2, Y: 3}
	tests := []struct {
		name           string
		dispatchActive bool
		state          DumpState
		wantQueue      bool
	}{
		{name: "fast dispatch", dispatchActive: true, state: Normal, wantQueue: true},
		{name: "forced UMD read", dispatchActive: true, state: ForceUMDRead, wantQueue: false},
		{name: "dispatch inactive", dispatchActive: false, state: Normal, wantQueue: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a tensix core whose control buffer starts with 7
			p, m := newMockProfiler(t, tt.dispatchActive, DefaultOptions())
			m.cluster.EXPECT().CoreType(0, core).Return(device.Tensix)
			m.hal.EXPECT().ProfilerControlAddress(device.Tensix).Return(uint64(0x100))
			words := make([]uint32, protocol.ControlVectorSize)
			words[0] = 7

			if tt.wantQueue {
				m.dev.EXPECT().MeshDevice().Return(nil)
				m.dev.EXPECT().CommandQueue().Return(m.cq)
				m.cq.EXPECT().
					EnqueueReadFromCore(gomock.Any(), core, gomock.Any(), uint64(0x100), uint32(protocol.ControlBufferSize), true).
					DoAndReturn(func(_ context.Context, _ device.CoreCoord, dst []uint32, _ uint64, _ uint32, _ bool) error {
						copy(dst, words)
						return nil
					})
			} else {
				m.cluster.EXPECT().
					ReadCore(gomock.Any(), 0, core, uint64(0x100), uint32(protocol.ControlBufferSize)).
					Return(words, nil)
			}

			// WHEN the control buffer is read
			err := p.readControlBuffer(context.Background(), core, tt.state)

			// THEN it lands in the control buffer map through the expected path
			require.NoError(t, err)
			assert.Equal(t, uint32(7), p.controlBuffers[core][0])
		})
	}
}

func TestReadControlBuffer_ShortReadIsAnError(t *testing.T) {
	core := device.CoreCoord{X: 2, Y: 3}
	p, m := newMockProfiler(t, false, DefaultOptions())
	m.cluster.EXPECT().CoreType(0, core).Return(device.Tensix)
	m.hal.EXPECT().ProfilerControlAddress(device.Tensix).Return(uint64(0x100))
	m.cluster.EXPECT().ReadCore(gomock.Any(), 0, core, gomock.Any(), gomock.Any()).Return([]uint32{1, 2}, nil)

	err := p.readControlBuffer(context.Background(), core, Normal)

	assert.Error(t, err)
	assert.NotContains(t, p.controlBuffers, core)
}

func TestResetControlWords_KeepsOnlyDRAMSliceWords(t *testing.T) {
	control := make([]uint32, protocol.ControlVectorSize)
	for i := range control {
		control[i] = uint32(i + 100)
	}

	reset := resetControlWords(control)

	require.Len(t, reset, protocol.ControlVectorSize)
	for i, w := range reset {
		switch i {
		case protocol.DRAMProfilerAddress, protocol.FlatID, protocol.CoreCountPerDRAM:
			assert.Equal(t, control[i], w, "word %d must be preserved", i)
		default:
			assert.Zero(t, w, "word %d must be cleared", i)
		}
	}
}

func TestResetControlBuffer_SkipsUnreadCore(t *testing.T) {
	// GIVEN no control buffer was read for the core
	p, _ := newMockProfiler(t, false, DefaultOptions())

	// WHEN it is reset THEN nothing is written (the mocks expect no calls)
	assert.NoError(t, p.resetControlBuffer(context.Background(), device.CoreCoord{X: 1, Y: 1}, Normal))
}

func TestResetControlBuffer_SlowDispatchWritesThroughCluster(t *testing.T) {
	core := device.CoreCoord{X: 4, Y: 5}
	p, m := newMockProfiler(t, false, DefaultOptions())
	control := make([]uint32, protocol.ControlVectorSize)
	control[protocol.HostBufferEndIndexBrEr] = 40
	control[protocol.FlatID] = 3
	p.controlBuffers[core] = control

	m.cluster.EXPECT().CoreType(0, core).Return(device.Tensix)
	m.hal.EXPECT().ProfilerControlAddress(device.Tensix).Return(uint64(0x100))
	m.cluster.EXPECT().WriteCore(gomock.Any(), 0, core, uint64(0x100), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _ device.CoreCoord, _ uint64, words []uint32) error {
			assert.Zero(t, words[protocol.HostBufferEndIndexBrEr])
			assert.Equal(t, uint32(3), words[protocol.FlatID])
			return nil
		})

	assert.NoError(t, p.resetControlBuffer(context.Background(), core, Normal))
}

func TestReadProfileBuffer_SlowReadsEveryChannel(t *testing.T) {
	// GIVEN two DRAM channels of 4 words, the second failing
	p, m := newMockProfiler(t, false, DefaultOptions())
	m.dev.EXPECT().NumDRAMChannels().Return(2)
	m.dev.EXPECT().ProfilerBankSizeBytes().Return(uint32(16))
	m.hal.EXPECT().ProfilerDRAMAddress().Return(uint64(0x2000))
	m.cluster.EXPECT().ReadDRAM(gomock.Any(), 0, 0, uint64(0x2000), gomock.Len(4)).
		DoAndReturn(func(_ context.Context, _, _ int, _ uint64, dst []uint32) error {
			copy(dst, []uint32{1, 2, 3, 4})
			return nil
		})
	m.cluster.EXPECT().ReadDRAM(gomock.Any(), 0, 1, uint64(0x2000), gomock.Len(4)).
		Return(errors.New("link down"))

	// WHEN the profile buffer is read
	err := p.readProfileBuffer(context.Background(), Normal)

	// THEN the failing bank is left zero and the read succeeds
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3, 4, 0, 0, 0, 0}, p.profileBuffer)
}

func TestReadProfileBuffer_FastWalksDRAMGrid(t *testing.T) {
	// GIVEN a 2x1 DRAM grid behind the command queue
	p, m := newMockProfiler(t, true, DefaultOptions())
	m.dev.EXPECT().MeshDevice().Return(nil)
	m.dev.EXPECT().CommandQueue().Return(m.cq)
	m.dev.EXPECT().DRAMGridSize().Return(device.CoreCoord{X: 2, Y: 1})
	m.dev.EXPECT().ProfilerBankSizeBytes().Return(uint32(8))
	m.hal.EXPECT().ProfilerDRAMAddress().Return(uint64(0x40))
	m.dev.EXPECT().VirtualDRAMCore(device.CoreCoord{X: 0, Y: 0}).Return(device.CoreCoord{X: 0, Y: 11})
	m.dev.EXPECT().VirtualDRAMCore(device.CoreCoord{X: 1, Y: 0}).Return(device.CoreCoord{X: 5, Y: 11})

	gomock.InOrder(
		m.cq.EXPECT().EnqueueReadFromCore(gomock.Any(), device.CoreCoord{X: 0, Y: 11}, gomock.Any(), uint64(0x40), uint32(8), true).
			DoAndReturn(func(_ context.Context, _ device.CoreCoord, dst []uint32, _ uint64, _ uint32, _ bool) error {
				copy(dst, []uint32{1, 2})
				return nil
			}),
		m.cq.EXPECT().EnqueueReadFromCore(gomock.Any(), device.CoreCoord{X: 5, Y: 11}, gomock.Any(), uint64(0x40), uint32(8), true).
			DoAndReturn(func(_ context.Context, _ device.CoreCoord, dst []uint32, _ uint64, _ uint32, _ bool) error {
				copy(dst, []uint32{3, 4})
				return nil
			}),
	)

	// WHEN the profile buffer is read
	err := p.readProfileBuffer(context.Background(), Normal)

	// THEN the banks are concatenated in grid order
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3, 4}, p.profileBuffer)
}

func TestReadProfileBuffer_DispatchCoresDumpReadsSlow(t *testing.T) {
	// GIVEN dispatch firmware active but a dispatch-cores dump
	opts := DefaultOptions()
	opts.DoDispatchCores = true
	p, m := newMockProfiler(t, true, opts)
	m.dev.EXPECT().NumDRAMChannels().Return(1)
	m.dev.EXPECT().ProfilerBankSizeBytes().Return(uint32(4))
	m.hal.EXPECT().ProfilerDRAMAddress().Return(uint64(0))
	m.cluster.EXPECT().ReadDRAM(gomock.Any(), 0, 0, uint64(0), gomock.Len(1)).Return(nil)

	// WHEN read THEN the cluster path serves it and no queue is touched
	assert.NoError(t, p.readProfileBuffer(context.Background(), OnlyDispatchCores))
}

func TestReadL1DataBuffer_SizesByRiscCount(t *testing.T) {
	core := device.CoreCoord{X: 25, Y: 16}
	p, m := newMockProfiler(t, false, DefaultOptions())
	layout := protocol.DefaultLayout()
	m.cluster.EXPECT().CoreType(0, core).Return(device.ActiveEth)
	m.hal.EXPECT().ProfilerBufferAddress(device.ActiveEth).Return(uint64(0x800))
	m.hal.EXPECT().NumRiscProcessors(device.ActiveEth).Return(1)
	m.cluster.EXPECT().ReadCore(gomock.Any(), 0, core, uint64(0x800), layout.L1BufferSize()).
		Return(make([]uint32, layout.L1VectorSize), nil)

	words, err := p.readL1DataBuffer(context.Background(), core, Normal)

	require.NoError(t, err)
	assert.Len(t, words, int(layout.L1VectorSize))
}

func TestReadL1DataBuffer_NoQueueIsAnError(t *testing.T) {
	core := device.CoreCoord{X: 1, Y: 1}
	p, m := newMockProfiler(t, true, DefaultOptions())
	m.cluster.EXPECT().CoreType(0, core).Return(device.Tensix)
	m.hal.EXPECT().ProfilerBufferAddress(device.Tensix).Return(uint64(0x800))
	m.hal.EXPECT().NumRiscProcessors(device.Tensix).Return(5)
	m.dev.EXPECT().MeshDevice().Return(nil)
	m.dev.EXPECT().CommandQueue().Return(nil)

	_, err := p.readL1DataBuffer(context.Background(), core, Normal)

	assert.ErrorIs(t, err, device.ErrNoCommandQueue)
}
