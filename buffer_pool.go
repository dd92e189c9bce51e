package go_symcrypt

import (
	"sync"
	"sync/atomic"
)

// bufferPool manages reusable byte slices for CryptoStream chunking.
// Uses sync.Pool with size-based buckets:
//   - 512 bytes:   short writes
//   - 4096 bytes:  default stream chunk
//   - 16384 bytes: bulk copies
type bufferPool struct {
	pool512 sync.Pool
	pool4K  sync.Pool
	pool16K sync.Pool
	enabled atomic.Bool

	gets          uint64
	getsOversized uint64
	puts          uint64
}

var globalBufferPool = newBufferPool()

func newBufferPool() *bufferPool {
	bp := &bufferPool{
		pool512: sync.Pool{New: func() interface{} { buf := make([]byte, 0, 512); return &buf }},
		pool4K:  sync.Pool{New: func() interface{} { buf := make([]byte, 0, 4096); return &buf }},
		pool16K: sync.Pool{New: func() interface{} { buf := make([]byte, 0, 16384); return &buf }},
	}
	bp.enabled.Store(true)
	return bp
}

// EnableBufferPool turns on buffer reuse for CryptoStream. On by default.
func EnableBufferPool() { globalBufferPool.enabled.Store(true) }

// DisableBufferPool makes CryptoStream allocate fresh buffers.
func DisableBufferPool() { globalBufferPool.enabled.Store(false) }

// IsBufferPoolEnabled returns whether buffer pooling is currently enabled.
func IsBufferPoolEnabled() bool { return globalBufferPool.enabled.Load() }

// GetBuffer returns a zero-length buffer with capacity >= size.
func (bp *bufferPool) GetBuffer(size int) []byte {
	if !bp.enabled.Load() {
		return make([]byte, 0, size)
	}
	var bufPtr *[]byte
	switch {
	case size <= 512:
		bufPtr = bp.pool512.Get().(*[]byte)
	case size <= 4096:
		bufPtr = bp.pool4K.Get().(*[]byte)
	case size <= 16384:
		bufPtr = bp.pool16K.Get().(*[]byte)
	default:
		atomic.AddUint64(&bp.getsOversized, 1)
		return make([]byte, 0, size)
	}
	atomic.AddUint64(&bp.gets, 1)
	return (*bufPtr)[:0]
}

// PutBuffer wipes buf and returns it to its bucket. Buffers hold plaintext,
// so they are always cleared before reuse.
func (bp *bufferPool) PutBuffer(buf []byte) {
	if buf == nil {
		return
	}
	clear(buf[:cap(buf)])
	if !bp.enabled.Load() {
		return
	}
	buf = buf[:0]
	switch cap(buf) {
	case 512:
		bp.pool512.Put(&buf)
	case 4096:
		bp.pool4K.Put(&buf)
	case 16384:
		bp.pool16K.Put(&buf)
	default:
		return
	}
	atomic.AddUint64(&bp.puts, 1)
}

// BufferPoolStats reports how often the pool served and took back buffers.
type BufferPoolStats struct {
	Gets          uint64
	GetsOversized uint64
	Puts          uint64
}

// GetBufferPoolStats returns current buffer pool statistics.
func GetBufferPoolStats() BufferPoolStats {
	return BufferPoolStats{
		Gets:          atomic.LoadUint64(&globalBufferPool.gets),
		GetsOversized: atomic.LoadUint64(&globalBufferPool.getsOversized),
		Puts:          atomic.LoadUint64(&globalBufferPool.puts),
	}
}
