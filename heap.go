package chunkheap

import (
	"fmt"
	"unsafe"
)

// Heap owns a single contiguous, caller-provided byte region and
// maintains it as a doubly-threaded list of chunks (see Chunk). It is the
// only structural authority over that region: chunks are interior views
// into it and never outlive it.
//
// Heap is single-threaded and synchronous — there are no suspension
// points, no blocking operations, and no I/O. Simultaneous structural
// mutation of one Heap from two goroutines is a programmer error this
// package does not detect; a caller needing concurrent access must
// serialize all Heap operations itself (for example with a single mutex
// guarding every call), the same way the original design intends a
// free-list policy layered above this core to provide it.
type Heap struct {
	region     []byte
	chunkCount int
	capacity   int // sum of all chunk sizes established at New; invariant for Verify
}

// New partitions region into an initial chunk list. It panics if region
// is too small to hold even one chunk.
//
// Larger regions are sliced into multiple chunks because a chunk's size
// field is only 15 bits wide (MaxSize()): each chunk greedily claims
// min(remaining, MaxSize()) alignment units until what remains would be
// too small to form another chunk, at which point the current chunk is
// marked LAST. A residual of fewer than MinSize() units is left unused.
func New(region []byte) *Heap {
	h := &Heap{region: region}

	n := len(region) / Alignment()
	if n < MinSize() {
		panic(fmt.Sprintf("chunkheap: heap region must hold at least %d alignment units, got %d", MinSize(), n))
	}

	prevSize := 0
	off := 0
	remaining := n
	for {
		size := remaining
		if size > MaxSize() {
			size = MaxSize()
		}

		c := Chunk{heap: h, off: off}
		c.SetPrevSize(prevSize)
		c.SetSize(size)
		c.SetAllocated(false)
		c.SetLast(false)
		h.chunkCount++

		prevSize = size
		remaining -= size
		if remaining < MinSize() {
			c.SetLast(true)
			break
		}
		off += size
	}
	// remaining here is the residual smaller than MinSize(); it is
	// wasted, never attached to the last chunk (spec.md §3, invariant 1).
	h.capacity = n - remaining

	return h
}

// ChunkCount returns the number of chunks currently in the list.
func (h *Heap) ChunkCount() int {
	return h.chunkCount
}

// FirstChunk returns the chunk starting at the region's first byte.
func (h *Heap) FirstChunk() Chunk {
	return Chunk{heap: h, off: 0}
}

// Walk visits every chunk from FirstChunk to the last chunk in address
// order, stopping early if visit returns false.
func (h *Heap) Walk(visit func(Chunk) bool) {
	c := h.FirstChunk()
	for {
		if !visit(c) {
			return
		}
		next, ok := c.Next()
		if !ok {
			return
		}
		c = next
	}
}

// ToPtr returns a pointer to c's payload, skipping HeaderSize() alignment
// units past its header. The caller is responsible for T fitting within
// c's payload.
func ToPtr[T any](h *Heap, c Chunk) *T {
	byteOff := (c.off + HeaderSize()) * Alignment()
	return (*T)(unsafe.Pointer(&h.region[byteOff]))
}

// FromPtr is the inverse of ToPtr: given a payload pointer previously
// returned by ToPtr for this Heap, it returns the owning Chunk.
func FromPtr[T any](h *Heap, ptr *T) Chunk {
	base := uintptr(unsafe.Pointer(&h.region[0]))
	target := uintptr(unsafe.Pointer(ptr))
	byteOff := int(target - base)
	off := byteOff/Alignment() - HeaderSize()
	return Chunk{heap: h, off: off}
}

// Split partitions c0 at boundary size, producing a new chunk
// immediately after it. It returns false with no mutation if size or the
// resulting remainder would be smaller than MinSize(). c0's ALLOCATED
// flag is left unchanged; the returned chunk is always free, leaving the
// caller to mark it allocated.
func (h *Heap) Split(c0 Chunk, size int) (Chunk, bool) {
	newSize := c0.Size() - size
	if size < MinSize() || newSize < MinSize() {
		return Chunk{}, false
	}

	c2, hasNext := c0.Next()

	c0.SetSize(size)
	c0.SetLast(false)

	c1 := Chunk{heap: h, off: c0.off + size}
	c1.SetSize(newSize)
	c1.SetPrevSize(size)
	c1.SetAllocated(false)
	if hasNext {
		c2.SetPrevSize(newSize)
		c1.SetLast(false)
	} else {
		c1.SetLast(true)
	}

	h.chunkCount++
	return c1, true
}

// AbsorbNext merges the chunk immediately following c0 into c0. It is a
// no-op if c0 is the last chunk, and silently does nothing (no mutation)
// if the merged size would overflow MaxSize(). It panics if both c0 and
// its successor are allocated — the core never coalesces two chunks a
// caller has marked in use.
//
// If the successor was the allocated one, its payload is relocated to
// c0's payload address via a memmove-equivalent copy, so its bytes are
// preserved unchanged at the merged chunk's payload address (ToPtr of c0).
func (h *Heap) AbsorbNext(c0 Chunk) {
	c1, ok := c0.Next()
	if !ok {
		return
	}

	if c0.IsAllocated() && c1.IsAllocated() {
		panic("chunkheap: absorb_next: both chunks are allocated")
	}

	newSize := c0.Size() + c1.Size()
	if newSize > MaxSize() {
		return
	}

	c1Last := c1.IsLast()
	c1Allocated := c1.IsAllocated()
	c1Size := c1.Size()
	c1Off := c1.off

	c0.SetSize(newSize)
	c0.SetLast(c1Last)
	c0.SetAllocated(c0.IsAllocated() || c1Allocated)

	if next, ok := c0.Next(); ok {
		next.SetPrevSize(newSize)
	}

	if c1Allocated {
		n := (c1Size - HeaderSize()) * Alignment()
		dst := (c0.off + HeaderSize()) * Alignment()
		src := (c1Off + HeaderSize()) * Alignment()
		copy(h.region[dst:dst+n], h.region[src:src+n])
	}

	h.chunkCount--
}

// Find performs a first-fit linear scan from FirstChunk, returning the
// first chunk that is both free and at least size alignment units. It
// does not split the chunk it finds; the caller splits if it only needs
// part of it.
func (h *Heap) Find(size int) (Chunk, bool) {
	c := h.FirstChunk()
	for {
		if !c.IsAllocated() && c.Size() >= size {
			return c, true
		}
		next, ok := c.Next()
		if !ok {
			return Chunk{}, false
		}
		c = next
	}
}
