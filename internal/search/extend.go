package search

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/christianazinn/triple/internal/config"
	"github.com/christianazinn/triple/internal/parallel"
	"github.com/christianazinn/triple/internal/polygonal"
)

// TripleExtender scans each surviving pair (a, b) for the smallest c in
// [b, cbound] ([b+1, cbound] under the distinct convention) such that both
// P(a)·P(c) + n and P(c)·P(b) + n are perfect squares.
//
// One pair is one task and tasks scan c in ascending order, so the
// smallest qualifying c wins deterministically; there is no competing
// write to resolve.
type TripleExtender struct {
	seq      polygonal.Sequence
	offset   int64
	cbound   uint64
	distinct bool
	workers  int64
}

// NewTripleExtender creates the extension stage from a validated
// configuration.
func NewTripleExtender(seq polygonal.Sequence, cfg config.Config) *TripleExtender {
	return &TripleExtender{
		seq:      seq,
		offset:   cfg.Offset,
		cbound:   cfg.CBound,
		distinct: cfg.Distinct,
		workers:  int64(cfg.Workers()),
	}
}

// Extend processes the compacted pair list and returns one Triple per
// input pair, index-aligned: entry q extends pairs[q], with C set to
// NotFound when no c in range qualifies. The caller filters sentinels when
// emitting, keeping q traceable back to its pair.
func (e *TripleExtender) Extend(ctx context.Context, pairs []Pair, onProgress func(done uint64)) ([]Triple, error) {
	results := make([]Triple, len(pairs))
	sem := semaphore.NewWeighted(e.workers)

	var wg sync.WaitGroup
	var ec parallel.ErrorCollector

	for q, p := range pairs {
		if !p.Valid() {
			// Defensive: compaction never emits sentinels.
			results[q] = Triple{A: p.A, B: p.B, C: NotFound}
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			ec.SetError(err)
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			t, err := e.scanPair(ctx, p)
			if err != nil {
				ec.SetError(err)
				return
			}
			results[q] = t
			if onProgress != nil {
				onProgress(1)
			}
		}()
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanPair computes P(a) and P(b) once, then walks c upward until both
// D(n) conditions hold or the range is exhausted.
func (e *TripleExtender) scanPair(ctx context.Context, p Pair) (Triple, error) {
	aprime, err := e.seq.Value(p.A)
	if err != nil {
		return Triple{}, err
	}
	bprime, err := e.seq.Value(p.B)
	if err != nil {
		return Triple{}, err
	}

	cLo := p.B
	if e.distinct {
		cLo = p.B + 1
	}
	sinceCheck := 0
	for c := cLo; c <= e.cbound; c++ {
		if sinceCheck++; sinceCheck >= cancelCheckInterval {
			sinceCheck = 0
			if err := ctx.Err(); err != nil {
				return Triple{}, err
			}
		}
		cprime, err := e.seq.Value(c)
		if err != nil {
			return Triple{}, err
		}
		ok, err := polygonal.SquareOffset(aprime, cprime, e.offset)
		if err != nil {
			return Triple{}, err
		}
		if !ok {
			continue
		}
		ok, err = polygonal.SquareOffset(cprime, bprime, e.offset)
		if err != nil {
			return Triple{}, err
		}
		if ok {
			return Triple{A: p.A, B: p.B, C: c}, nil
		}
	}
	return Triple{A: p.A, B: p.B, C: NotFound}, nil
}
