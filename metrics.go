package chunkheap

import "fmt"

// Stats is a read-only snapshot of a Heap's chunk list, counted in
// alignment units (this package's unit of account — see Alignment()),
// not bytes. It adds no state of its own; every field is recomputed from
// the existing chunk list.
type Stats struct {
	ChunkCount     int // number of chunks currently in the list
	Capacity       int // sum of every chunk's size
	AllocatedUnits int // sum of size over allocated chunks
	FreeUnits      int // sum of size over free chunks
	LargestFree    int // size of the largest free chunk, 0 if none
}

// Stats walks the chunk list once and returns a Stats snapshot.
func (h *Heap) Stats() Stats {
	s := Stats{}
	h.Walk(func(c Chunk) bool {
		s.ChunkCount++
		s.Capacity += c.Size()
		if c.IsAllocated() {
			s.AllocatedUnits += c.Size()
		} else {
			s.FreeUnits += c.Size()
			if c.Size() > s.LargestFree {
				s.LargestFree = c.Size()
			}
		}
		return true
	})
	return s
}

// Verify checks the quantified invariants of the chunk list (prev_size
// linkage, exactly one LAST chunk with no successor, size-sum
// conservation against the capacity established at New, per-chunk size
// bounds, and the first chunk's zero prev_size) and returns a descriptive
// error for the first violation found, or nil if the list is consistent.
//
// Verify is a caller-invoked diagnostic, not a precondition guard on a
// structural operation — unlike the panics in Chunk and Heap, a failing
// Verify never aborts the program on its own.
func (h *Heap) Verify() error {
	c := h.FirstChunk()
	first := true
	lastSeen := false
	sum := 0
	count := 0
	prevSize := 0

	for {
		if c.Size() < MinSize() || c.Size() > MaxSize() {
			return fmt.Errorf("chunkheap: chunk at offset %d has out-of-range size %d", c.off, c.Size())
		}
		if first && c.PrevSize() != 0 {
			return fmt.Errorf("chunkheap: first chunk has non-zero prev_size %d", c.PrevSize())
		}
		// prevSize is the actual size of the chunk visited last iteration,
		// not derived from c's own (possibly corrupted) prev_size field —
		// otherwise this check would validate the field against itself.
		if !first && c.PrevSize() != prevSize {
			return fmt.Errorf("chunkheap: chunk at offset %d has prev_size %d, predecessor size disagrees", c.off, c.PrevSize())
		}

		sum += c.Size()
		count++
		first = false
		prevSize = c.Size()

		next, ok := c.Next()
		if !ok {
			if c.IsLast() {
				lastSeen = true
			}
			break
		}
		if c.IsLast() {
			return fmt.Errorf("chunkheap: chunk at offset %d is marked LAST but has a successor", c.off)
		}
		c = next
	}

	if !lastSeen {
		return fmt.Errorf("chunkheap: chunk list has no LAST chunk")
	}
	if count != h.chunkCount {
		return fmt.Errorf("chunkheap: chunk_count is %d, walk found %d chunks", h.chunkCount, count)
	}
	if sum != h.capacity {
		return fmt.Errorf("chunkheap: chunk sizes sum to %d, want %d", sum, h.capacity)
	}
	return nil
}
