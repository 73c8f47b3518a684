package search

// chunkOversubscription is the number of chunks planned per worker. More
// chunks than workers keeps the pool busy despite the triangular row-width
// imbalance of the (a, b) grid.
const chunkOversubscription = 4

// chunk is a contiguous band of a-rows owned by exactly one task. Chunks
// partition the grid, so no two tasks ever address the same candidate.
type chunk struct {
	loRow      uint64 // first a value, inclusive
	hiRow      uint64 // last a value, inclusive
	candidates uint64 // number of (a, b) candidates in the band
}

// rowWidth returns the number of b candidates in row a: b ranges over
// [a, bbound] by default, or [a+1, bbound] under the distinct convention.
func rowWidth(a, bbound uint64, distinct bool) uint64 {
	lo := a
	if distinct {
		lo = a + 1
	}
	if bbound < lo {
		return 0
	}
	return bbound - lo + 1
}

// totalCandidates returns the size of the (a, b) enumeration.
func totalCandidates(abound, bbound uint64, distinct bool) uint64 {
	var total uint64
	for a := uint64(1); a <= abound; a++ {
		total += rowWidth(a, bbound, distinct)
	}
	return total
}

// planChunks splits the rows [1, abound] into at most workers·oversub
// contiguous chunks of roughly equal candidate count. Chunk order follows
// row order, which is what makes prefix-sum assembly order-preserving.
func planChunks(abound, bbound uint64, distinct bool, workers int) []chunk {
	total := totalCandidates(abound, bbound, distinct)
	wanted := uint64(workers * chunkOversubscription)
	if wanted == 0 {
		wanted = 1
	}
	target := total / wanted
	if target == 0 {
		target = 1
	}

	var chunks []chunk
	cur := chunk{loRow: 1}
	for a := uint64(1); a <= abound; a++ {
		cur.hiRow = a
		cur.candidates += rowWidth(a, bbound, distinct)
		if cur.candidates >= target && a < abound {
			chunks = append(chunks, cur)
			cur = chunk{loRow: a + 1}
		}
	}
	if cur.hiRow >= cur.loRow {
		chunks = append(chunks, cur)
	}
	return chunks
}
