package polygonal

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestIsqrt_PropertyBased verifies the floor square root contract
//
//	Isqrt(x)² ≤ x < (Isqrt(x)+1)²
//
// across randomly generated 64-bit inputs, which exercises the region where
// the float64 seed is inexact and the Newton/fixup correction must engage.
func TestIsqrt_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	properties.Property("Isqrt satisfies s² ≤ x < (s+1)²", prop.ForAll(
		func(x uint64) bool {
			s := Isqrt(x)
			if sqrExceeds(s, x) {
				return false
			}
			return sqrExceeds(s+1, x)
		},
		gen.UInt64(),
	))

	properties.Property("Isqrt is exact on perfect squares", prop.ForAll(
		func(s uint64) bool {
			s %= 1 << 32 // keep s² within 64 bits
			return Isqrt(s*s) == s
		},
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestKGonalRecurrence_PropertyBased verifies the defining recurrence of
// the polygonal numbers:
//
//	P(k, i) − P(k, i−1) = (k−2)·(i−1) + 1
//
// Each row of a polygonal family grows by one more than a fixed multiple of
// the previous gap, which pins down the closed form used by Value.
func TestKGonalRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("P(k, i) − P(k, i−1) = (k−2)(i−1) + 1", prop.ForAll(
		func(k, i uint64) bool {
			seq, err := NewSequence(k)
			if err != nil {
				return false
			}
			cur, err := seq.Value(i)
			if err != nil {
				return false
			}
			prev, err := seq.Value(i - 1)
			if err != nil {
				return false
			}
			return cur-prev == (k-2)*(i-1)+1
		},
		gen.UInt64Range(3, 1000),
		gen.UInt64Range(1, 1_000_000),
	))

	properties.TestingRun(t)
}

// TestSquareOffset_MatchesOracle cross-validates the 64-bit predicate
// against the GMP arbitrary-precision oracle over small parameter draws,
// including negative offsets.
func TestSquareOffset_MatchesOracle(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("fast predicate agrees with GMP oracle", prop.ForAll(
		func(k, a, b uint64, n int64) bool {
			seq, err := NewSequence(k)
			if err != nil {
				return false
			}
			av, err := seq.Value(a)
			if err != nil {
				return false
			}
			bv, err := seq.Value(b)
			if err != nil {
				return false
			}
			got, err := SquareOffset(av, bv, n)
			if err != nil {
				return false
			}
			oracle := NewOracle(k, n)
			return got == oracle.SquareOffset(a, b)
		},
		gen.UInt64Range(3, 12),
		gen.UInt64Range(1, 2000),
		gen.UInt64Range(1, 2000),
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
