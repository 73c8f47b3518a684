package polygonal

import (
	"math/bits"

	apperrors "github.com/christianazinn/triple/internal/errors"
)

// MinOrder is the smallest supported polygon order. k=3 yields the
// triangular numbers.
const MinOrder = 3

// Sequence generates k-gonal numbers for a fixed polygon order k.
// A Sequence is immutable and safe for concurrent use.
type Sequence struct {
	k uint64
}

// NewSequence creates a Sequence for the given polygon order.
//
// Parameters:
//   - k: The polygon order (3 for triangular, 4 for square, 5 for pentagonal, ...).
//
// Returns:
//   - Sequence: The sequence generator.
//   - error: A ValidationError if k < 3.
func NewSequence(k uint64) (Sequence, error) {
	if k < MinOrder {
		return Sequence{}, apperrors.ValidationError{Field: "k", Message: "polygon order must be at least 3"}
	}
	return Sequence{k: k}, nil
}

// Order returns the polygon order k of the sequence.
func (s Sequence) Order() uint64 { return s.k }

// Value computes the i-th k-gonal number:
//
//	P(k, i) = ((k-2)·i² − (k-4)·i) / 2
//
// All intermediates are tracked in 128 bits so the computation either
// returns an exact 64-bit result or an OverflowError; it never wraps.
//
// Parameters:
//   - i: The index, starting at 1. Value(0) is 0 for every k.
//
// Returns:
//   - uint64: The i-th k-gonal number.
//   - error: An OverflowError if the result exceeds 64 bits.
func (s Sequence) Value(i uint64) (uint64, error) {
	// Factored form: P(k, i) = i · ((k-2)·i − (k-4)) / 2.
	// The numerator i·((k-2)·i − (k-4)) is always even.
	hi, m := bits.Mul64(s.k-2, i)
	if hi != 0 {
		return 0, apperrors.NewOverflowError("kgonal", "k=%d i=%d", s.k, i)
	}
	var t uint64
	var carry uint64
	if s.k >= 4 {
		// m ≥ (k-4)·... only when i ≥ 1; for i = 0 both terms are 0.
		if m < s.k-4 {
			t = 0 // i == 0
		} else {
			t = m - (s.k - 4)
		}
	} else {
		// k == 3: −(k-4) = +1.
		t, carry = bits.Add64(m, 1, 0)
		if carry != 0 {
			return 0, apperrors.NewOverflowError("kgonal", "k=%d i=%d", s.k, i)
		}
	}
	phi, plo := bits.Mul64(i, t)
	// The halved product fits in 64 bits iff the full product is below 2^65.
	if phi > 1 {
		return 0, apperrors.NewOverflowError("kgonal", "k=%d i=%d", s.k, i)
	}
	return phi<<63 | plo>>1, nil
}

// SquareOffset reports whether x·y + n is a perfect square, where x and y
// are non-negative 64-bit values and n is a signed offset. A sum that falls
// below zero is never a square; a sum that would exceed 64 bits is an
// OverflowError rather than a wrapped comparison.
//
// Parameters:
//   - x, y: The two k-gonal values to multiply.
//   - n: The D(n) offset.
//
// Returns:
//   - bool: true iff x·y + n is a perfect square (and non-negative).
//   - error: An OverflowError if x·y or x·y + n exceeds 64 bits.
func SquareOffset(x, y uint64, n int64) (bool, error) {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return false, apperrors.NewOverflowError("pair product", "%d * %d", x, y)
	}
	if n >= 0 {
		sum, carry := bits.Add64(lo, uint64(n), 0)
		if carry != 0 {
			return false, apperrors.NewOverflowError("offset sum", "%d + %d", lo, n)
		}
		return IsPerfectSquare(sum), nil
	}
	neg := uint64(-n)
	if lo < neg {
		return false, nil
	}
	return IsPerfectSquare(lo - neg), nil
}

// CheckRange verifies that every product of two k-gonal values with indices
// up to maxIndex, offset by n, fits in 64 bits. It is used to reject
// parameter combinations up front so the search stages never observe a
// wrapped intermediate.
//
// Parameters:
//   - k: The polygon order.
//   - maxIndex: The largest index any stage will evaluate.
//   - n: The D(n) offset.
//
// Returns:
//   - error: An OverflowError describing the first failing intermediate, or nil.
func CheckRange(k, maxIndex uint64, n int64) error {
	seq, err := NewSequence(k)
	if err != nil {
		return err
	}
	pmax, err := seq.Value(maxIndex)
	if err != nil {
		return err
	}
	if _, err := SquareOffset(pmax, pmax, n); err != nil {
		return apperrors.NewOverflowError("range check",
			"P(%d, %d)² %+d does not fit in 64 bits", k, maxIndex, n)
	}
	return nil
}
