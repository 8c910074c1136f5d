package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(8)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	n, err = bb.Write([]byte(" world"))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	require.Equal(t, []byte("hello world"), bb.Bytes())
	require.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.Write([]byte("payload"))

	capBefore := cap(bb.B)
	bb.Reset()

	require.Zero(t, bb.Len())
	require.Equal(t, capBefore, cap(bb.B))
}

func TestPayloadBufferPool_RoundTrip(t *testing.T) {
	bb := GetPayloadBuffer()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())

	_, _ = bb.Write([]byte("data"))
	PutPayloadBuffer(bb)

	// A fresh Get must always hand back an empty buffer.
	again := GetPayloadBuffer()
	require.Zero(t, again.Len())
	PutPayloadBuffer(again)
}

func TestPayloadBufferPool_DropsOversized(t *testing.T) {
	big := NewByteBuffer(PayloadBufferMaxThreshold * 2)

	// Must not panic; oversized buffers are simply discarded.
	PutPayloadBuffer(big)
	PutPayloadBuffer(nil)
}
