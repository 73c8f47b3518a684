// Package polygonal provides the arithmetic core of the D(n) triple search:
// k-gonal number generation, an exact full-range 64-bit integer square root,
// the D(n) square predicate, and an arbitrary-precision GMP oracle used as
// the reference implementation.
//
// All 64-bit arithmetic in this package is checked: operations either
// return an exact result or an apperrors.OverflowError, never a silently
// wrapped value.
package polygonal
