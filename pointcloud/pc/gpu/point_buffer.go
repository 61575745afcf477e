package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/cloudview/pointcloud/pc/core"
)

// PointBuffer is the device-side ring storage: capacity records of three
// float32 each, allocated once and zero-initialized.
//
// Writes go through Queue.WriteBuffer, which the queue orders before any
// command buffer submitted afterwards and after every one submitted before,
// so a frame's uploads never race the draw that reads them.
type PointBuffer struct {
	Buffer   *wgpu.Buffer
	queue    *wgpu.Queue
	capacity int
}

func NewPointBuffer(device *wgpu.Device, capacity int) (*PointBuffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("point buffer capacity must be positive, got %d", capacity)
	}
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "PointRing",
		Size:             uint64(capacity) * core.PointSize,
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("allocate point ring (%d points): %w", capacity, err)
	}
	return &PointBuffer{
		Buffer:   buf,
		queue:    device.GetQueue(),
		capacity: capacity,
	}, nil
}

func (b *PointBuffer) Capacity() int {
	return b.capacity
}

// WritePoints implements core.PointSink.
func (b *PointBuffer) WritePoints(offset int, points []core.Point) error {
	if len(points) == 0 {
		return nil
	}
	if offset < 0 || offset+len(points) > b.capacity {
		return fmt.Errorf("write [%d, %d) out of bounds for %d points", offset, offset+len(points), b.capacity)
	}
	return b.queue.WriteBuffer(b.Buffer, uint64(offset)*core.PointSize, wgpu.ToBytes(points))
}

func (b *PointBuffer) Release() {
	if b.Buffer != nil {
		b.Buffer.Release()
		b.Buffer = nil
	}
}
