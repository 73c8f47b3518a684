// Package search implements the D(n) triple search pipeline: a pair filter
// over the (a, b) index grid, a compactor that turns its sparse survivors
// into a dense ordered list, and a triple extender that scans for a
// matching c. A Pipeline sequences the stages with a full barrier between
// them and emits complete triples in pair-discovery order.
//
// Workers within a stage never share a mutable address: each chunk of the
// grid and each surviving pair is owned by exactly one task, so the stages
// need no locks. The compact strategy derives every write offset from a
// prefix sum materialized before any write happens.
package search
