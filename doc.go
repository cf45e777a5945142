// Package chunkheap implements a boundary-tag free-chunk manager: the
// substrate of a dynamic memory allocator for embedded and no-runtime
// contexts. It partitions a single caller-owned byte region into a list of
// variable-sized chunks, each preceded by a small bit-packed header
// recording its own size, its predecessor's size, and two status flags.
//
// # Overview
//
// chunkheap does not allocate or free objects itself — it is the core a
// free-list policy and an allocate/free façade are built on top of. It
// provides:
//
//   - Chunk, a handle to an in-place header with accessors for size,
//     previous size, the ALLOCATED and LAST flags, and neighbor traversal.
//   - Heap, which owns the backing region, builds the initial chunk list,
//     and implements Split, AbsorbNext, and Find over it.
//
// # Basic Usage
//
//	region := make([]byte, 32*1024)
//	h := chunkheap.New(region)
//
//	c0 := h.FirstChunk()
//	c1, ok := h.Split(c0, chunkheap.MinSize()*2)
//	if ok {
//	    c1.SetAllocated(true)
//	    ptr := chunkheap.ToPtr[int64](h, c1)
//	    *ptr = 42
//	}
//
//	// Later, coalesce c1 back into c0 (payload is relocated if c1 was
//	// the allocated one).
//	h.AbsorbNext(c0)
//
// # Memory Layout
//
// Every chunk begins at an address that is a multiple of the platform
// alignment unit A (Alignment()). Its header occupies the first
// HeaderSize() alignment units: a prev_size field (bits 0-14: the
// predecessor's size in alignment units, bit 15: the LAST flag) followed
// by a size field (bits 0-14: this chunk's size including header, bit 15:
// the ALLOCATED flag). The payload follows immediately after the header.
//
// # Performance Characteristics
//
//   - Split, AbsorbNext, neighbor traversal: O(1), except AbsorbNext when
//     the successor was allocated, which is O(payload bytes copied).
//   - Find: O(chunks in the list), first-fit.
//
// # Important Notes
//
//   - chunkheap is single-threaded; see Heap's doc comment for the
//     concurrency policy.
//   - There is no free-list index and no fit strategy beyond first-fit —
//     those are the caller's responsibility.
//   - Out-of-range size/prev_size writes and absorbing two allocated
//     chunks are programmer errors and panic. Split returning no chunk and
//     AbsorbNext silently refusing an overflowing merge are expected
//     outcomes callers must check for.
package chunkheap
