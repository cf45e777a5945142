package chunkheap_test

import (
	"fmt"

	"github.com/mkeeter/chunkheap"
)

// Example demonstrates initializing a heap and walking its chunk list.
func Example() {
	region := make([]byte, 64*1024)
	h := chunkheap.New(region)

	fmt.Printf("chunks: %d\n", h.ChunkCount())
	c0 := h.FirstChunk()
	fmt.Printf("first chunk size: %d units, allocated: %v, last: %v\n",
		c0.Size(), c0.IsAllocated(), c0.IsLast())

	// Output:
	// chunks: 1
	// first chunk size: 8192 units, allocated: false, last: true
}

// Example_split demonstrates carving an allocation out of a free chunk.
func Example_split() {
	region := make([]byte, 64*1024)
	h := chunkheap.New(region)
	c0 := h.FirstChunk()

	c1, ok := h.Split(c0, chunkheap.MinSize()*4)
	if !ok {
		fmt.Println("split refused")
		return
	}
	c0.SetAllocated(true)

	fmt.Printf("chunks after split: %d\n", h.ChunkCount())
	fmt.Printf("c0 allocated: %v, size: %d\n", c0.IsAllocated(), c0.Size())
	fmt.Printf("c1 allocated: %v, prev_size: %d\n", c1.IsAllocated(), c1.PrevSize())

	// Output:
	// chunks after split: 2
	// c0 allocated: true, size: 8
	// c1 allocated: false, prev_size: 8
}

// Example_absorbNext demonstrates coalescing two neighboring free chunks
// back into one after an allocation is released by a layer above this
// package.
func Example_absorbNext() {
	region := make([]byte, 64*1024)
	h := chunkheap.New(region)
	c0 := h.FirstChunk()
	originalSize := c0.Size()

	c1, ok := h.Split(c0, chunkheap.MinSize()*4)
	if !ok {
		fmt.Println("split refused")
		return
	}
	_ = c1

	h.AbsorbNext(c0)
	fmt.Printf("chunks: %d\n", h.ChunkCount())
	fmt.Printf("c0 size restored: %v\n", c0.Size() == originalSize)

	// Output:
	// chunks: 1
	// c0 size restored: true
}

// Example_find demonstrates first-fit search over the chunk list.
func Example_find() {
	region := make([]byte, 64*1024)
	h := chunkheap.New(region)
	c0 := h.FirstChunk()

	c1, ok := h.Split(c0, chunkheap.MinSize()*2)
	if !ok {
		fmt.Println("split refused")
		return
	}
	c0.SetAllocated(true)

	found, ok := h.Find(chunkheap.MinSize())
	fmt.Printf("found: %v, matches c1: %v\n", ok, found == c1)

	// Output:
	// found: true, matches c1: true
}

// Example_stats demonstrates the Stats diagnostic snapshot.
func Example_stats() {
	region := make([]byte, 64*1024)
	h := chunkheap.New(region)
	c0 := h.FirstChunk()

	if _, ok := h.Split(c0, chunkheap.MinSize()*4); !ok {
		fmt.Println("split refused")
		return
	}
	c0.SetAllocated(true)

	stats := h.Stats()
	fmt.Printf("chunks: %d, allocated: %d, free: %d\n",
		stats.ChunkCount, stats.AllocatedUnits, stats.FreeUnits)

	// Output:
	// chunks: 2, allocated: 8, free: 8184
}
