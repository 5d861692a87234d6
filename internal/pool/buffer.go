// Package pool provides memory management optimizations.
// This includes buffer pooling to reduce allocations when hashing listed
// object contents.
package pool

import (
	"sync"
)

// HashBufferSize defines the copy-buffer size used for content hashing (64KB)
const HashBufferSize = 64 * 1024

// BufferPool manages reusable byte buffers to reduce allocations.
// Buffers are handed out at full length, ready for io.CopyBuffer.
type BufferPool struct {
	size int
	pool *sync.Pool
}

// NewBufferPool creates a buffer pool producing buffers of the given size.
// A non-positive size falls back to HashBufferSize.
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		size = HashBufferSize
	}
	return &BufferPool{
		size: size,
		pool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
	}
}

// Get returns a buffer from the pool at full length.
// The caller is responsible for calling Put to return the buffer to the pool.
func (bp *BufferPool) Get() []byte {
	bufPtr := bp.pool.Get().(*[]byte)
	return (*bufPtr)[:bp.size]
}

// Put returns a buffer to the pool.
// The buffer should not be used after calling Put.
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.size {
		// Foreign buffers are not pooled to avoid size drift
		return
	}
	buf = buf[:bp.size]
	bp.pool.Put(&buf)
}

// Global buffer pool instance for use throughout the module.
var globalBufferPool = NewBufferPool(HashBufferSize)

// GetHashBuffer returns a hash copy-buffer from the global pool.
func GetHashBuffer() []byte {
	return globalBufferPool.Get()
}

// PutHashBuffer returns a hash copy-buffer to the global pool.
func PutHashBuffer(buf []byte) {
	globalBufferPool.Put(buf)
}
