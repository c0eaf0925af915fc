// Package stream moves rendered oscillator blocks to pull-based sinks. A
// Reader renders host voices block by block into a RingBuffer and serves
// interleaved little-endian float32 PCM through io.Reader.
package stream

import (
	"sync"

	"github.com/tphakala/go-caoscil/internal/simdops"
)

// bufferGrowthFactor is the capacity multiplier applied when a write does not fit.
const bufferGrowthFactor = 2

// RingBuffer implements a circular sample buffer. It is safe for concurrent
// use by one writer and one reader.
type RingBuffer[F simdops.Float] struct {
	data     []F
	capacity int
	size     int
	readPos  int
	writePos int
	mu       sync.Mutex
}

// NewRingBuffer creates a new ring buffer with the specified capacity.
func NewRingBuffer[F simdops.Float](capacity int) *RingBuffer[F] {
	if capacity < 1 {
		capacity = 1
	}

	return &RingBuffer[F]{
		data:     make([]F, capacity),
		capacity: capacity,
	}
}

// Write adds samples to the buffer, growing it when they do not fit.
func (b *RingBuffer[F]) Write(samples []F) {
	b.mu.Lock()
	defer b.mu.Unlock()

	needed := len(samples)
	if needed == 0 {
		return
	}

	if b.size+needed > b.capacity {
		b.grow(b.size + needed)
	}

	// At most two copies: up to the end of data, then from the start.
	n := copy(b.data[b.writePos:], samples)
	copy(b.data, samples[n:])
	b.writePos = (b.writePos + needed) % b.capacity
	b.size += needed
}

// ReadInto moves up to len(dst) samples into dst and returns the count.
func (b *RingBuffer[F]) ReadInto(dst []F) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := min(len(dst), b.size)
	if n == 0 {
		return 0
	}

	first := min(n, b.capacity-b.readPos)
	copy(dst, b.data[b.readPos:b.readPos+first])
	copy(dst[first:n], b.data[:n-first])

	b.readPos = (b.readPos + n) % b.capacity
	b.size -= n
	return n
}

// Read retrieves up to n samples from the buffer.
func (b *RingBuffer[F]) Read(n int) []F {
	if n <= 0 {
		return []F{}
	}
	out := make([]F, min(n, b.Available()))
	return out[:b.ReadInto(out)]
}

// Peek returns up to n samples without removing them from the buffer.
func (b *RingBuffer[F]) Peek(n int) []F {
	b.mu.Lock()
	defer b.mu.Unlock()

	n = min(n, b.size)
	if n <= 0 {
		return []F{}
	}

	result := make([]F, n)
	readPos := b.readPos
	for i := range result {
		result[i] = b.data[readPos]
		readPos = (readPos + 1) % b.capacity
	}
	return result
}

// Available returns the number of samples available for reading.
func (b *RingBuffer[F]) Available() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Space returns the space left before the buffer has to grow.
func (b *RingBuffer[F]) Space() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity - b.size
}

// Capacity returns the current buffer capacity.
func (b *RingBuffer[F]) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity
}

// Clear removes all samples from the buffer.
func (b *RingBuffer[F]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.size = 0
	b.readPos = 0
	b.writePos = 0
}

// grow increases the buffer capacity to at least minCapacity, keeping order.
func (b *RingBuffer[F]) grow(minCapacity int) {
	newCapacity := b.capacity
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}

	newData := make([]F, newCapacity)
	if b.size > 0 {
		if b.readPos < b.writePos {
			copy(newData, b.data[b.readPos:b.writePos])
		} else {
			n1 := copy(newData, b.data[b.readPos:])
			copy(newData[n1:], b.data[:b.writePos])
		}
	}

	b.data = newData
	b.capacity = newCapacity
	b.readPos = 0
	b.writePos = b.size
}
