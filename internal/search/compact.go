package search

// CompactDense returns the sentinel-free entries of a dense slot array,
// preserving their relative enumeration order. It is a stable
// partition-then-truncate: every valid entry appears exactly once, every
// sentinel is dropped, and compacting an already-compact list is the
// identity.
//
// The pass is O(len(dense)), which is the cost the compact strategy avoids
// by never materializing the dense array at all.
func CompactDense(dense []Pair) []Pair {
	compacted := make([]Pair, 0)
	for _, p := range dense {
		if p.Valid() {
			compacted = append(compacted, p)
		}
	}
	return compacted
}
