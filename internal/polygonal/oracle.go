package polygonal

import (
	"github.com/ncw/gmp"
)

// Oracle evaluates the D(n) square condition in arbitrary precision using
// GMP. It serves as the exact reference implementation: the 64-bit fast
// path is validated against it in tests, and the verify mode re-checks
// every emitted triple with it after a run.
//
// An Oracle is not safe for concurrent use; it reuses scratch integers to
// avoid per-call allocation.
type Oracle struct {
	k  *gmp.Int
	n  *gmp.Int
	t1 *gmp.Int
	t2 *gmp.Int
}

// NewOracle creates an Oracle for polygon order k and offset n.
// Indices passed to the Oracle must fit in an int64, which every validated
// search bound does.
func NewOracle(k uint64, n int64) *Oracle {
	return &Oracle{
		k:  gmp.NewInt(int64(k)),
		n:  gmp.NewInt(n),
		t1: new(gmp.Int),
		t2: new(gmp.Int),
	}
}

// KGonal returns the i-th k-gonal number as a fresh arbitrary-precision
// integer.
func (o *Oracle) KGonal(i uint64) *gmp.Int {
	// P(k, i) = i · ((k-2)·i − (k-4)) / 2
	idx := gmp.NewInt(int64(i))
	v := new(gmp.Int).Sub(o.k, gmp.NewInt(2))
	v.Mul(v, idx)
	v.Sub(v, new(gmp.Int).Sub(o.k, gmp.NewInt(4)))
	v.Mul(v, idx)
	return v.Rsh(v, 1)
}

// SquareOffset reports whether P(a)·P(b) + n is a non-negative perfect
// square, evaluated exactly.
func (o *Oracle) SquareOffset(a, b uint64) bool {
	o.t1.Mul(o.KGonal(a), o.KGonal(b))
	o.t1.Add(o.t1, o.n)
	if o.t1.Sign() < 0 {
		return false
	}
	root := sqrtFloor(o.t1)
	o.t2.Mul(root, root)
	return o.t2.Cmp(o.t1) == 0
}

// IsTriple reports whether (a, b, c) has property D(n): every pairwise
// product of their k-gonal values, offset by n, is a perfect square.
func (o *Oracle) IsTriple(a, b, c uint64) bool {
	return o.SquareOffset(a, b) && o.SquareOffset(a, c) && o.SquareOffset(c, b)
}

// sqrtFloor computes the floor square root of a non-negative x by Newton
// iteration on arbitrary-precision integers.
func sqrtFloor(x *gmp.Int) *gmp.Int {
	if x.Sign() == 0 {
		return gmp.NewInt(0)
	}
	// Initial guess: 2^(ceil(bits/2)), always at or above the true root.
	r := new(gmp.Int).Lsh(gmp.NewInt(1), uint(x.BitLen()+1)/2)
	t := new(gmp.Int)
	for {
		t.Quo(x, r)
		t.Add(t, r)
		t.Rsh(t, 1)
		if t.Cmp(r) >= 0 {
			return r
		}
		r.Set(t)
	}
}
