package host

import (
	"iter"
)

const (
	// RING_DEFAULT_CAPACITY is the default number of snapshots kept by a Ring.
	RING_DEFAULT_CAPACITY = 64
)

// Ring keeps the most recent snapshots in a circular buffer, discarding the
// oldest once Capacity is reached.
type Ring struct {
	Capacity int

	WriteIndex int
	Size       int
	Data       [][]uint32
}

var _ Observer = (*Ring)(nil)

// Rewind empties the ring, allocating the buffer if needed.
func (ring *Ring) Rewind() {
	if ring.Capacity <= 0 {
		ring.Capacity = RING_DEFAULT_CAPACITY
	}
	if len(ring.Data) != ring.Capacity {
		ring.Data = make([][]uint32, ring.Capacity)
	} else {
		clear(ring.Data)
	}

	ring.WriteIndex = 0
	ring.Size = 0
}

// Update stores the snapshot, overwriting the oldest when full.
// Changing Capacity discards the kept snapshots.
func (ring *Ring) Update(registers []uint32) {
	if ring.Capacity <= 0 || len(ring.Data) != ring.Capacity {
		ring.Rewind()
	}

	ring.Data[ring.WriteIndex] = registers
	ring.WriteIndex++
	if ring.WriteIndex == ring.Capacity {
		ring.WriteIndex = 0
	}
	if ring.Size < ring.Capacity {
		ring.Size++
	}
}

// Snapshots yields the kept snapshots, oldest first.
func (ring *Ring) Snapshots() iter.Seq[[]uint32] {
	return func(yield func(registers []uint32) bool) {
		// Walk the allocated buffer; Capacity may have moved since.
		length := len(ring.Data)
		start := ring.WriteIndex - ring.Size
		if start < 0 {
			start += length
		}
		for n := range ring.Size {
			if !yield(ring.Data[(start+n)%length]) {
				return
			}
		}
	}
}

// Replay sends the kept snapshots, oldest first, to the observer.
func (ring *Ring) Replay(observer Observer) (count int) {
	for registers := range ring.Snapshots() {
		observer.Update(registers)
		count++
	}

	return
}
