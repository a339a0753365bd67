package gouart

import (
	"errors"

	"go.uber.org/atomic"
)

// Common transmit buffer capacities. Any power of two is accepted by
// NewRingBuffer; these mirror the sizes drivers are usually built with.
const (
	BufferSizeSmall    = 64
	BufferSizeStandard = 256
	BufferSizeLarge    = 512
)

// ErrInvalidCapacity is returned when a ring buffer is constructed with a
// capacity that is zero or not a power of two.
var ErrInvalidCapacity = errors.New("ring buffer capacity must be a power of two")

// RingBuffer is a fixed-capacity circular byte queue shared between one
// producer and one consumer context. The head index is advanced only by Put
// and the tail index only by Get, so no lock is needed as long as there is a
// single producer and a single consumer. One slot is sacrificed so that
// head == tail always means empty and never full.
type RingBuffer struct {
	buf  []byte
	mask uint32
	head atomic.Uint32 // next write slot, producer-owned
	tail atomic.Uint32 // next read slot, consumer-owned
}

// NewRingBuffer creates a ring buffer holding at most capacity-1 bytes.
// The capacity must be a power of two.
func NewRingBuffer(capacity uint32) (*RingBuffer, error) {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		return nil, ErrInvalidCapacity
	}
	return &RingBuffer{
		buf:  make([]byte, capacity),
		mask: capacity - 1,
	}, nil
}

// Capacity returns the total number of slots, one of which is never used.
func (r *RingBuffer) Capacity() int {
	return len(r.buf)
}

// Put enqueues one byte. It returns false without mutating the buffer when
// the queue is full. Producer context only.
func (r *RingBuffer) Put(b byte) bool {
	head := r.head.Load()
	next := (head + 1) & r.mask
	if next == r.tail.Load() {
		return false
	}
	r.buf[head] = b
	r.head.Store(next)
	return true
}

// Get dequeues the oldest byte. It returns false when the queue is empty.
// Consumer context only.
func (r *RingBuffer) Get() (byte, bool) {
	tail := r.tail.Load()
	if tail == r.head.Load() {
		return 0, false
	}
	b := r.buf[tail]
	r.tail.Store((tail + 1) & r.mask)
	return b, true
}

// IsEmpty reports whether no bytes are queued.
func (r *RingBuffer) IsEmpty() bool {
	return r.head.Load() == r.tail.Load()
}

// IsFull reports whether another Put would fail.
func (r *RingBuffer) IsFull() bool {
	return (r.head.Load()+1)&r.mask == r.tail.Load()
}

// AvailableSpace returns how many more bytes can be queued.
func (r *RingBuffer) AvailableSpace() int {
	return int((r.tail.Load() - r.head.Load() - 1) & r.mask)
}

// Size returns the number of queued bytes.
func (r *RingBuffer) Size() int {
	return int((r.head.Load() - r.tail.Load()) & r.mask)
}

// Clear resets both indices. It is not a synchronizing operation: the caller
// must guarantee no drain is in progress on the consumer side.
func (r *RingBuffer) Clear() {
	r.head.Store(0)
	r.tail.Store(0)
}
