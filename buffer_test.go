package gouart

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRingBufferCapacity(t *testing.T) {
	cases := []struct {
		capacity uint32
		ok       bool
	}{
		{0, false},
		{3, false},
		{100, false},
		{2, true},
		{64, true},
		{256, true},
		{1024, true},
	}
	for _, c := range cases {
		rb, err := NewRingBuffer(c.capacity)
		if c.ok {
			require.NoError(t, err, "capacity %d", c.capacity)
			assert.Equal(t, int(c.capacity), rb.Capacity())
		} else {
			assert.ErrorIs(t, err, ErrInvalidCapacity, "capacity %d", c.capacity)
			assert.Nil(t, rb)
		}
	}
}

func TestRingBufferFIFO(t *testing.T) {
	rb, err := NewRingBuffer(8)
	require.NoError(t, err)

	for i := byte(0); i < 7; i++ {
		assert.True(t, rb.Put(i))
	}
	assert.True(t, rb.IsFull())

	for i := byte(0); i < 7; i++ {
		b, ok := rb.Get()
		require.True(t, ok)
		assert.Equal(t, i, b)
	}
	assert.True(t, rb.IsEmpty())
}

func TestRingBufferFullRejection(t *testing.T) {
	rb, err := NewRingBuffer(4)
	require.NoError(t, err)

	assert.True(t, rb.Put(1))
	assert.True(t, rb.Put(2))
	assert.True(t, rb.Put(3))
	assert.False(t, rb.Put(4))
	assert.False(t, rb.Put(4))
	assert.Equal(t, 3, rb.Size())

	// Contents are unchanged by the failed puts.
	for _, want := range []byte{1, 2, 3} {
		b, ok := rb.Get()
		require.True(t, ok)
		assert.Equal(t, want, b)
	}
}

func TestRingBufferEmptyGet(t *testing.T) {
	rb, err := NewRingBuffer(8)
	require.NoError(t, err)

	b, ok := rb.Get()
	assert.False(t, ok)
	assert.Zero(t, b)
	assert.Equal(t, 0, rb.Size())

	// The failed get did not move the tail.
	assert.True(t, rb.Put(0x55))
	b, ok = rb.Get()
	require.True(t, ok)
	assert.Equal(t, byte(0x55), b)
}

func TestRingBufferSpaceInvariant(t *testing.T) {
	rb, err := NewRingBuffer(16)
	require.NoError(t, err)

	check := func() {
		assert.Equal(t, rb.Capacity()-1, rb.AvailableSpace()+rb.Size())
	}

	check()
	for i := 0; i < 40; i++ {
		rb.Put(byte(i))
		check()
		if i%3 == 0 {
			rb.Get()
			check()
		}
	}
}

func TestRingBufferWraparound(t *testing.T) {
	rb, err := NewRingBuffer(8)
	require.NoError(t, err)

	next := byte(0)
	for round := 0; round < 100; round++ {
		for i := 0; i < 3; i++ {
			require.True(t, rb.Put(byte(round*3+i)))
		}
		for i := 0; i < 3; i++ {
			b, ok := rb.Get()
			require.True(t, ok)
			require.Equal(t, next, b)
			next++
		}
	}
	assert.True(t, rb.IsEmpty())
}

func TestRingBufferClearIdempotent(t *testing.T) {
	rb, err := NewRingBuffer(8)
	require.NoError(t, err)

	rb.Put(1)
	rb.Put(2)
	rb.Clear()
	assert.True(t, rb.IsEmpty())
	assert.Equal(t, rb.Capacity()-1, rb.AvailableSpace())

	rb.Clear()
	rb.Clear()
	assert.True(t, rb.IsEmpty())
	assert.Equal(t, 0, rb.Size())
}

func TestRingBufferSingleProducerSingleConsumer(t *testing.T) {
	rb, err := NewRingBuffer(64)
	require.NoError(t, err)

	const total = 100000
	done := make(chan []byte)

	go func() {
		received := make([]byte, 0, total)
		for len(received) < total {
			b, ok := rb.Get()
			if !ok {
				runtime.Gosched()
				continue
			}
			received = append(received, b)
		}
		done <- received
	}()

	for i := 0; i < total; i++ {
		for !rb.Put(byte(i)) {
			runtime.Gosched()
		}
	}

	received := <-done
	require.Len(t, received, total)
	for i, b := range received {
		require.Equal(t, byte(i), b, "byte %d out of order", i)
	}
}
