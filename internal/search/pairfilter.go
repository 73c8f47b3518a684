package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/christianazinn/triple/internal/config"
	"github.com/christianazinn/triple/internal/polygonal"
)

// cancelCheckInterval is the number of candidates scanned between context
// checks inside a row.
const cancelCheckInterval = 1 << 13

// PairFilter evaluates the D(n) pair condition over the (a, b) grid.
// For every a in [1, abound] and b in [a, bbound] (b in [a+1, bbound]
// under the distinct convention) it keeps (a, b) iff
// P(a)·P(b) + n is a perfect square.
type PairFilter struct {
	seq      polygonal.Sequence
	offset   int64
	abound   uint64
	bbound   uint64
	distinct bool
	workers  int
}

// NewPairFilter creates the pair stage from a validated configuration.
func NewPairFilter(seq polygonal.Sequence, cfg config.Config) *PairFilter {
	return &PairFilter{
		seq:      seq,
		offset:   cfg.Offset,
		abound:   cfg.ABound,
		bbound:   cfg.BBound,
		distinct: cfg.Distinct,
		workers:  cfg.Workers(),
	}
}

// TotalCandidates returns the number of (a, b) combinations this filter
// will evaluate.
func (f *PairFilter) TotalCandidates() uint64 {
	return totalCandidates(f.abound, f.bbound, f.distinct)
}

// FilterCompact runs the filter with the stream-compaction scheme: each
// chunk task collects its survivors locally, an exclusive prefix sum over
// the per-chunk counts yields every task's write offset, and the tasks
// copy into the right-sized result with no dense intermediate.
//
// The returned list is in (a, b) enumeration order. The errgroup Wait is
// the stage barrier: no caller observes the list before every write in it
// has completed.
func (f *PairFilter) FilterCompact(ctx context.Context, onProgress func(done uint64)) ([]Pair, error) {
	chunks := planChunks(f.abound, f.bbound, f.distinct, f.workers)
	buffers := make([][]Pair, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, ch := range chunks {
		g.Go(func() error {
			local := make([]Pair, 0, 16)
			err := f.scanChunk(ctx, ch, func(p Pair) {
				local = append(local, p)
			})
			if err != nil {
				return err
			}
			buffers[i] = local
			if onProgress != nil {
				onProgress(ch.candidates)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Exclusive prefix sum of per-chunk survivor counts. The offsets are
	// fully materialized before any task writes into the compacted list.
	offsets := make([]uint64, len(buffers))
	var running uint64
	for i, buf := range buffers {
		offsets[i] = running
		running += uint64(len(buf))
	}

	compacted := make([]Pair, running)
	g2, _ := errgroup.WithContext(ctx)
	g2.SetLimit(f.workers)
	for i, buf := range buffers {
		if len(buf) == 0 {
			continue
		}
		g2.Go(func() error {
			copy(compacted[offsets[i]:], buf)
			return nil
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}
	return compacted, nil
}

// FilterDense runs the filter against a caller-owned dense slot array of
// abound·bbound entries. Survivor (a, b) is written to the unique slot
// (a−1)·bbound + (b−1); every other slot keeps the (0, 0) sentinel. Each
// slot is written by at most one task, so the stage needs no locks.
func (f *PairFilter) FilterDense(ctx context.Context, dense []Pair, onProgress func(done uint64)) error {
	chunks := planChunks(f.abound, f.bbound, f.distinct, f.workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, ch := range chunks {
		g.Go(func() error {
			err := f.scanChunk(ctx, ch, func(p Pair) {
				dense[(p.A-1)*f.bbound+(p.B-1)] = p
			})
			if err != nil {
				return err
			}
			if onProgress != nil {
				onProgress(ch.candidates)
			}
			return nil
		})
	}
	return g.Wait()
}

// scanChunk evaluates every candidate in the chunk's rows in enumeration
// order, invoking emit for each survivor.
func (f *PairFilter) scanChunk(ctx context.Context, ch chunk, emit func(Pair)) error {
	sinceCheck := 0
	for a := ch.loRow; a <= ch.hiRow; a++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		bLo := a
		if f.distinct {
			bLo = a + 1
		}
		if bLo > f.bbound {
			continue
		}
		aprime, err := f.seq.Value(a)
		if err != nil {
			return err
		}
		for b := bLo; b <= f.bbound; b++ {
			if sinceCheck++; sinceCheck >= cancelCheckInterval {
				sinceCheck = 0
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			bprime, err := f.seq.Value(b)
			if err != nil {
				return err
			}
			ok, err := polygonal.SquareOffset(aprime, bprime, f.offset)
			if err != nil {
				return err
			}
			if ok {
				emit(Pair{A: a, B: b})
			}
		}
	}
	return nil
}
