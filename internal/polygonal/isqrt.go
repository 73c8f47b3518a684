package polygonal

import (
	"math"
	"math/bits"
)

// maxRoot is the largest possible floor square root of a uint64:
// Isqrt(2⁶⁴−1) = 2³²−1.
const maxRoot = 1<<32 - 1

// Isqrt computes the floor integer square root of x over the full 64-bit
// range: the unique s with s² ≤ x < (s+1)².
//
// The float64 seed is only an approximation above 2⁵³, where the mantissa
// can no longer represent x exactly. One Newton–Raphson step plus an
// explicit ±1 fixup make the result exact; the fixup compares squares
// through 128-bit products so no intermediate overflows.
func Isqrt(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	s := uint64(math.Sqrt(float64(x)))
	if s > maxRoot {
		s = maxRoot
	}
	// One Newton–Raphson correction: s ← (s + x/s) / 2.
	s = (s + x/s) / 2
	if s > maxRoot {
		s = maxRoot
	}
	for sqrExceeds(s, x) {
		s--
	}
	for !sqrExceeds(s+1, x) {
		s++
	}
	return s
}

// sqrExceeds reports whether s² > x, computing s² in 128 bits.
func sqrExceeds(s, x uint64) bool {
	hi, lo := bits.Mul64(s, s)
	return hi > 0 || lo > x
}

// IsPerfectSquare reports whether x is the square of some integer.
func IsPerfectSquare(x uint64) bool {
	s := Isqrt(x)
	return s*s == x
}
