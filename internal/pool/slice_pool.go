package pool

import "sync"

// Slice pools for scratch slices that do not outlive one operation.
var (
	wordSlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetWordSlice retrieves a uint64 slice of exactly size elements from the pool.
//
// The contents are not zeroed. The caller must call the returned cleanup
// function, and must not use the slice afterwards.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []uint64: A slice with length equal to size
//   - func(): Cleanup function returning the slice to the pool
//
// Example:
//
//	words, cleanup := pool.GetWordSlice(n)
//	defer cleanup()
func GetWordSlice(size int) ([]uint64, func()) {
	ptr, _ := wordSlicePool.Get().(*[]uint64)
	if cap(*ptr) < size {
		*ptr = make([]uint64, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { wordSlicePool.Put(ptr) }
}

// GetIntSlice retrieves an int slice of exactly size elements from the pool.
// It follows the same contract as GetWordSlice.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	if cap(*ptr) < size {
		*ptr = make([]int, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { intSlicePool.Put(ptr) }
}
