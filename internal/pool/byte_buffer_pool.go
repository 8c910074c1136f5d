package pool

import (
	"io"
	"sync"
)

const (
	// PayloadBufferDefaultSize is the initial capacity of pooled buffers.
	PayloadBufferDefaultSize = 1024 * 4 // 4KiB

	// PayloadBufferMaxThreshold is the largest buffer returned to the pool.
	// Oversized buffers are dropped so one huge graph does not pin memory.
	PayloadBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a minimal growable byte buffer that implements io.Writer,
// suitable for pooling marshal output.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

var _ io.Writer = (*ByteBuffer)(nil)

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Write appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

var payloadBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(PayloadBufferDefaultSize)
	},
}

// GetPayloadBuffer returns an empty buffer from the pool.
func GetPayloadBuffer() *ByteBuffer {
	bb, _ := payloadBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutPayloadBuffer returns a buffer to the pool, dropping oversized ones.
func PutPayloadBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > PayloadBufferMaxThreshold {
		return
	}
	payloadBufferPool.Put(bb)
}
