package core

import (
	"errors"
	"fmt"
)

var ErrBatchTooLarge = errors.New("batch larger than ring capacity")

// PointSink is the storage behind a Ring. WritePoints copies points into
// slots [offset, offset+len(points)); the Ring never asks for a range that
// crosses the end of the storage.
type PointSink interface {
	WritePoints(offset int, points []Point) error
}

// Segment is one contiguous copy issued by an upload.
type Segment struct {
	Offset int
	Count  int
}

// Ring streams batches into a fixed-size sink at a rotating cursor. Once the
// cursor wraps, the oldest points are overwritten first. Storage is never
// reallocated.
type Ring struct {
	sink     PointSink
	capacity int
	cursor   int
	valid    int
	written  uint64
}

func NewRing(sink PointSink, capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be positive, got %d", capacity)
	}
	return &Ring{sink: sink, capacity: capacity}, nil
}

func (r *Ring) Capacity() int {
	return r.capacity
}

// Cursor is the slot the next batch starts at. After N points it is N mod Capacity.
func (r *Ring) Cursor() int {
	return r.cursor
}

// Valid is the number of slots written at least once.
func (r *Ring) Valid() int {
	return r.valid
}

// Written is the total number of points uploaded.
func (r *Ring) Written() uint64 {
	return r.written
}

// Plan returns the copies an upload of n points would issue: one segment, or
// a tail segment up to the end followed by a head segment from slot 0.
func (r *Ring) Plan(n int) []Segment {
	if n <= 0 {
		return nil
	}
	tail := min(n, r.capacity-r.cursor)
	segs := []Segment{{Offset: r.cursor, Count: tail}}
	if head := n - tail; head > 0 {
		segs = append(segs, Segment{Offset: 0, Count: head})
	}
	return segs
}

// Upload copies batch into the sink at the cursor and advances it. A batch
// that straddles the end is split tail then head. Batches larger than the
// capacity are rejected whole.
func (r *Ring) Upload(batch []Point) error {
	n := len(batch)
	if n == 0 {
		return nil
	}
	if n > r.capacity {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, n, r.capacity)
	}

	done := 0
	for _, seg := range r.Plan(n) {
		if err := r.sink.WritePoints(seg.Offset, batch[done:done+seg.Count]); err != nil {
			return fmt.Errorf("write ring segment at %d: %w", seg.Offset, err)
		}
		done += seg.Count
	}

	r.cursor = (r.cursor + n) % r.capacity
	r.valid = min(r.valid+n, r.capacity)
	r.written += uint64(n)
	return nil
}

// DrawCount is how many slots a draw covers. With all set it is the full
// capacity, including slots that were never written.
func (r *Ring) DrawCount(all bool) int {
	if all {
		return r.capacity
	}
	return r.valid
}

// HostBuffer is a PointSink backed by a slice.
type HostBuffer struct {
	Points []Point
}

func NewHostBuffer(capacity int) *HostBuffer {
	return &HostBuffer{Points: make([]Point, capacity)}
}

func (b *HostBuffer) WritePoints(offset int, points []Point) error {
	if offset < 0 || offset+len(points) > len(b.Points) {
		return fmt.Errorf("write [%d, %d) out of bounds for %d slots", offset, offset+len(points), len(b.Points))
	}
	copy(b.Points[offset:], points)
	return nil
}
