package pool

import "sync"

// maxPooledSliceSize caps the capacity of byte slices kept in the pool.
const maxPooledSliceSize = 64 * 1024

var byteSlicePool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetByteSlice retrieves and resizes a byte slice from the pool.
//
// The returned slice has length size; its contents are unspecified.
// The caller must call the returned cleanup function once it no longer
// references the slice.
//
// Example:
//
//	scratch, cleanup := pool.GetByteSlice(n)
//	defer cleanup()
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		if cap(*ptr) > maxPooledSliceSize {
			return
		}
		byteSlicePool.Put(ptr)
	}
}
