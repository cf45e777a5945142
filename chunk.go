package chunkheap

import (
	"fmt"
	"unsafe"
)

// MinPayloadLen is the minimum payload a chunk can carry, in alignment
// units, excluding the header.
const MinPayloadLen = 1

// MaxChunkSize is the largest size a single chunk can declare, in
// alignment units — the 15-bit limit of the size field.
const MaxChunkSize = 0x7FFF

const flagAllocated = 0x8000
const flagLast = 0x8000

// header is the two-field boundary tag that precedes every chunk's
// payload. Field order matches the wire layout from spec.md §6:
// prev_size first, then size, each a host-endian 16-bit word.
type header struct {
	prevSize uint16
	size     uint16
}

// Alignment returns A, the platform's natural word width in bytes. All
// chunk sizes are counted in multiples of A.
func Alignment() int {
	return int(unsafe.Sizeof(uintptr(0)))
}

// ToPaddedCSize rounds a byte count up to the next whole alignment unit.
func ToPaddedCSize(byteSize int) int {
	a := Alignment()
	return (byteSize + a - 1) / a
}

// HeaderSize returns H, the chunk header's size in alignment units.
func HeaderSize() int {
	return ToPaddedCSize(int(unsafe.Sizeof(header{})))
}

// ToCSize converts a payload size in bytes to a whole chunk size in
// alignment units (header included).
func ToCSize(payloadBytes int) int {
	return HeaderSize() + ToPaddedCSize(payloadBytes)
}

// MinSize returns the smallest legal chunk size, in alignment units.
func MinSize() int {
	return HeaderSize() + MinPayloadLen
}

// MaxSize returns the largest legal chunk size, in alignment units.
func MaxSize() int {
	return MaxChunkSize
}

// Chunk is a handle to a boundary-tag header living inside a Heap's
// backing region. It carries no data of its own — off is the chunk's
// offset from the start of the region, in alignment units — so a Chunk
// value is only valid for the lifetime of the Heap it was obtained from,
// and only describes the chunk list as it stood at the moment it was
// returned: any structural mutation (Split, AbsorbNext) can turn a
// previously-returned neighbor reference stale.
type Chunk struct {
	heap *Heap
	off  int
}

func (c Chunk) hdr() *header {
	byteOff := c.off * Alignment()
	return (*header)(unsafe.Pointer(&c.heap.region[byteOff]))
}

// Size returns the chunk's size (header + payload) in alignment units.
func (c Chunk) Size() int {
	return int(c.hdr().size &^ flagAllocated)
}

// SetSize writes the chunk's size, preserving the ALLOCATED flag. Panics
// if n is outside MinSize()..MaxSize().
func (c Chunk) SetSize(n int) {
	if n < MinSize() || n > MaxSize() {
		panic(fmt.Sprintf("chunkheap: size must be in %d..%d, got %d", MinSize(), MaxSize(), n))
	}
	h := c.hdr()
	h.size = uint16(n) | (h.size & flagAllocated)
}

// PrevSize returns the predecessor's size in alignment units, or 0 if
// this is the first chunk.
func (c Chunk) PrevSize() int {
	return int(c.hdr().prevSize &^ flagLast)
}

// SetPrevSize writes the predecessor's size, preserving the LAST flag.
// Zero is accepted as the first-chunk sentinel; any other value must be
// in MinSize()..MaxSize().
func (c Chunk) SetPrevSize(n int) {
	if n != 0 && (n < MinSize() || n > MaxSize()) {
		panic(fmt.Sprintf("chunkheap: prev_size must be 0 or in %d..%d, got %d", MinSize(), MaxSize(), n))
	}
	h := c.hdr()
	h.prevSize = uint16(n) | (h.prevSize & flagLast)
}

// IsAllocated reports whether the ALLOCATED flag is set.
func (c Chunk) IsAllocated() bool {
	return c.hdr().size&flagAllocated != 0
}

// SetAllocated sets or clears the ALLOCATED flag.
func (c Chunk) SetAllocated(allocated bool) {
	h := c.hdr()
	if allocated {
		h.size |= flagAllocated
	} else {
		h.size &^= flagAllocated
	}
}

// IsLast reports whether this is the final chunk in the list.
func (c Chunk) IsLast() bool {
	return c.hdr().prevSize&flagLast != 0
}

// SetLast sets or clears the LAST flag.
func (c Chunk) SetLast(last bool) {
	h := c.hdr()
	if last {
		h.prevSize |= flagLast
	} else {
		h.prevSize &^= flagLast
	}
}

// Previous returns the chunk immediately preceding c in address order.
// The second return value is false iff c is the first chunk.
func (c Chunk) Previous() (Chunk, bool) {
	ps := c.PrevSize()
	if ps == 0 {
		return Chunk{}, false
	}
	return Chunk{heap: c.heap, off: c.off - ps}, true
}

// Next returns the chunk immediately following c in address order. The
// second return value is false iff c is the last chunk.
func (c Chunk) Next() (Chunk, bool) {
	if c.IsLast() {
		return Chunk{}, false
	}
	return Chunk{heap: c.heap, off: c.off + c.Size()}, true
}
