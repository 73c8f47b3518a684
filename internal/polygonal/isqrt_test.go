package polygonal

import (
	"math"
	"testing"
)

// TestIsqrt_Boundaries checks Isqrt at the documented boundary values and
// at perfect squares adjacent to them.
func TestIsqrt_Boundaries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    uint64
		want uint64
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"two", 2, 1},
		{"three", 3, 1},
		{"four", 4, 2},
		{"2^32-1", 1<<32 - 1, 65535},
		{"2^32", 1 << 32, 65536},
		{"(2^16)^2-1", uint64(65536)*65536 - 1, 65535},
		{"(2^16)^2", uint64(65536) * 65536, 65536},
		{"2^63-1", 1<<63 - 1, 3037000499},
		{"2^63", 1 << 63, 3037000499},
		{"3037000499^2", 3037000499 * 3037000499, 3037000499},
		{"3037000500^2-1", 3037000500*3037000500 - 1, 3037000499},
		{"3037000500^2", 3037000500 * 3037000500, 3037000500},
		{"2^64-1", math.MaxUint64, 1<<32 - 1},
		{"(2^32-1)^2", (1<<32 - 1) * (1<<32 - 1), 1<<32 - 1},
		{"(2^32-1)^2-1", (1<<32-1)*(1<<32-1) - 1, 1<<32 - 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Isqrt(tt.x); got != tt.want {
				t.Errorf("Isqrt(%d) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

// TestIsqrt_Contract verifies the defining invariant s² ≤ x < (s+1)² across
// a sweep of magnitudes, including the region above 2⁵³ where the float64
// seed alone is unreliable.
func TestIsqrt_Contract(t *testing.T) {
	t.Parallel()
	check := func(x uint64) {
		s := Isqrt(x)
		if s > 0 && s*s > x {
			t.Fatalf("Isqrt(%d) = %d: s² = %d exceeds input", x, s, s*s)
		}
		if s < 1<<32-1 {
			next := (s + 1) * (s + 1)
			if next <= x {
				t.Fatalf("Isqrt(%d) = %d: (s+1)² = %d does not exceed input", x, s, next)
			}
		}
	}

	// Dense sweep at small magnitudes.
	for x := uint64(0); x < 1<<16; x++ {
		check(x)
	}
	// Straddle every power of two.
	for shift := 16; shift < 64; shift++ {
		base := uint64(1) << shift
		for d := uint64(0); d < 3 && d <= base; d++ {
			check(base - d)
			check(base + d)
		}
	}
	check(math.MaxUint64)
	check(math.MaxUint64 - 1)
}

// TestIsPerfectSquare verifies the exact-equality check around true squares.
func TestIsPerfectSquare(t *testing.T) {
	t.Parallel()
	for s := uint64(0); s < 1<<12; s++ {
		sq := s * s
		if !IsPerfectSquare(sq) {
			t.Errorf("IsPerfectSquare(%d) = false, want true (%d²)", sq, s)
		}
		if s >= 2 && IsPerfectSquare(sq-1) {
			t.Errorf("IsPerfectSquare(%d) = true, want false", sq-1)
		}
		if s >= 1 && IsPerfectSquare(sq+1) {
			t.Errorf("IsPerfectSquare(%d) = true, want false", sq+1)
		}
	}

	huge := []uint64{
		(1<<32 - 1) * (1<<32 - 1),
		3037000499 * 3037000499,
	}
	for _, sq := range huge {
		if !IsPerfectSquare(sq) {
			t.Errorf("IsPerfectSquare(%d) = false, want true", sq)
		}
		if IsPerfectSquare(sq - 1) {
			t.Errorf("IsPerfectSquare(%d) = true, want false", sq-1)
		}
	}
}
