package utils

import "math/bits"

// maxPowerOfTwo is the largest power of two representable by int.
const maxPowerOfTwo = 1 << (bits.UintSize - 2)

// IsPowerOfTwo reports whether the given n is a power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// CeilToPowerOfTwo returns n if it is a power-of-two, otherwise the next-highest power-of-two.
// Values below 2 round up to 2.
func CeilToPowerOfTwo(n int) int {
	if n <= 2 {
		return 2
	}
	if n > maxPowerOfTwo {
		panic("argument is too large")
	}
	return 1 << bits.Len(uint(n-1))
}
