package pmath

import (
	"math/bits"
)

// CeilToPowerOf2 rounds size up to the next power of 2.
// Sizes below 2 round to 2.
func CeilToPowerOf2(size int) int {
	if size < 2 {
		return 2
	}
	if size&(size-1) == 0 {
		return size
	}
	return 1 << bits.Len(uint(size))
}

// FloorToPowerOf2 rounds size down to the previous power of 2.
func FloorToPowerOf2(size int) int {
	if size < 2 {
		return 2
	}
	return 1 << (bits.Len(uint(size)) - 1)
}

func PowerOf2Index(size int) int {
	return bits.TrailingZeros64(uint64(CeilToPowerOf2(size)))
}

// CeilTo rounds size up to the next multiple of to. to must be a power of 2.
func CeilTo(size, to uintptr) uintptr {
	return (size + to - 1) &^ (to - 1)
}
