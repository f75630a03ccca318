package server

import "sync"

// Receive buffers are pooled by size class
type BufferPool struct {
	small  sync.Pool // 1KB, the default receive size
	medium sync.Pool // 4KB
	large  sync.Pool // 32KB
}

var globalBufferPool = &BufferPool{
	small: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 1024)
			return &buf
		},
	},
	medium: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 4096)
			return &buf
		},
	},
	large: sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 32768)
			return &buf
		},
	},
}

// GetBuffer returns a buffer of exactly size bytes
func GetBuffer(size int) []byte {
	switch {
	case size <= 1024:
		buf := globalBufferPool.small.Get().(*[]byte)
		return (*buf)[:size]
	case size <= 4096:
		buf := globalBufferPool.medium.Get().(*[]byte)
		return (*buf)[:size]
	case size <= 32768:
		buf := globalBufferPool.large.Get().(*[]byte)
		return (*buf)[:size]
	default:
		return make([]byte, size)
	}
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf []byte) {
	switch cap(buf) {
	case 1024:
		full := buf[:1024]
		globalBufferPool.small.Put(&full)
	case 4096:
		full := buf[:4096]
		globalBufferPool.medium.Put(&full)
	case 32768:
		full := buf[:32768]
		globalBufferPool.large.Put(&full)
	}
	// Else: non-standard size, let GC handle it
}
