package device

import (
	"context"
	"errors"
	"fmt"
)

// ShardQueue is the fast-dispatch capability used by the profiler: blocking
// reads and writes of core-local memory on one device.
type ShardQueue interface {
	ReadShard(ctx context.Context, core CoreCoord, addr uint64, dst []uint32) error
	WriteShard(ctx context.Context, core CoreCoord, addr uint64, src []uint32) error
}

// ErrNoCommandQueue is returned by QueueFor when a device exposes neither a
// command queue nor a mesh.
var ErrNoCommandQueue = errors.New("device has no command queue")

// QueueFor returns the shard queue of dev: the mesh queue addressed by the
// device's mesh coordinate when it belongs to a mesh, else its own queue.
func QueueFor(dev Device) (ShardQueue, error) {
	if mesh := dev.MeshDevice(); mesh != nil {
		coord, ok := mesh.FindDevice(dev.ID())
		if !ok {
			return nil, fmt.Errorf("device %d not found in its mesh", dev.ID())
		}
		return &meshQueue{cq: mesh.MeshCommandQueue(), coord: coord}, nil
	}
	cq := dev.CommandQueue()
	if cq == nil {
		return nil, fmt.Errorf("device %d: %w", dev.ID(), ErrNoCommandQueue)
	}
	return &singleQueue{cq: cq}, nil
}

type singleQueue struct {
	cq CommandQueue
}

func (q *singleQueue) ReadShard(ctx context.Context, core CoreCoord, addr uint64, dst []uint32) error {
	return q.cq.EnqueueReadFromCore(ctx, core, dst, addr, uint32(len(dst)*4), true)
}

func (q *singleQueue) WriteShard(ctx context.Context, core CoreCoord, addr uint64, src []uint32) error {
	return q.cq.EnqueueWriteToCore(ctx, core, src, addr, uint32(len(src)*4), true)
}

type meshQueue struct {
	cq    MeshCommandQueue
	coord MeshCoordinate
}

func (q *meshQueue) ReadShard(ctx context.Context, core CoreCoord, addr uint64, dst []uint32) error {
	return q.cq.EnqueueReadShardFromCore(ctx, DeviceMemoryAddress{Coord: q.coord, Core: core, Address: addr},
		dst, uint32(len(dst)*4), true)
}

func (q *meshQueue) WriteShard(ctx context.Context, core CoreCoord, addr uint64, src []uint32) error {
	return q.cq.EnqueueWriteShardToCore(ctx, DeviceMemoryAddress{Coord: q.coord, Core: core, Address: addr},
		src, uint32(len(src)*4), true)
}
