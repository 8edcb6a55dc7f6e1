// Package pool reduces allocation churn in the decoder's hot path: the
// single-slot record-block cache replaces its buffer on every miss, so
// without pooling every keyword lookup that crosses a block boundary
// would allocate and discard tens to low hundreds of KB. Buffers return
// to the pool when a Decoder closes, so a process converting many
// dictionaries back to back reuses the same handful of buffers instead
// of allocating fresh ones per file.
package pool

import "sync"

const (
	// BlockBufferDefaultSize matches the common decompressed record- or
	// keyword-block size for MDX/MDD dictionaries.
	BlockBufferDefaultSize = 1024 * 16 // 16KiB
	// BlockBufferMaxThreshold discards buffers larger than this instead
	// of pooling them, so one oversized block doesn't pin memory for the
	// life of the process.
	BlockBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is a reusable byte slice with the grow-in-place semantics the
// block cache needs: each decode call requires an exact length on a buffer
// that usually already has enough capacity from the previous miss.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer without releasing its backing array.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// SetFrom replaces the buffer's contents with a copy of data, growing the
// backing array only if necessary.
func (bb *ByteBuffer) SetFrom(data []byte) {
	bb.Grow(len(data))
	bb.B = bb.B[:len(data)]
	copy(bb.B, data)
}

// Grow ensures the buffer can hold requiredBytes without reallocating.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B) >= requiredBytes {
		return
	}

	newBuf := make([]byte, 0, requiredBytes)
	bb.B = newBuf
}

// ByteBufferPool pools ByteBuffers behind a sync.Pool, discarding buffers
// that grew past maxThreshold instead of retaining them indefinitely.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize and
// are discarded, rather than recycled, once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool for reuse, unless it has grown past
// maxThreshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var blockPool = NewByteBufferPool(BlockBufferDefaultSize, BlockBufferMaxThreshold)

// GetBlockBuffer retrieves a ByteBuffer from the default block pool.
func GetBlockBuffer() *ByteBuffer {
	return blockPool.Get()
}

// PutBlockBuffer returns a ByteBuffer to the default block pool.
func PutBlockBuffer(bb *ByteBuffer) {
	blockPool.Put(bb)
}
