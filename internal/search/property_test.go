package search

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/christianazinn/triple/internal/config"
)

// TestCompactDense_PropertyBased verifies the compaction contract over
// arbitrary slot arrays: output length equals the valid-entry count,
// relative order is preserved, and the pass is idempotent.
func TestCompactDense_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	genDense := gen.SliceOf(gen.UInt64Range(0, 3).Map(func(v uint64) Pair {
		// Roughly a quarter of the slots hold a survivor.
		if v == 0 {
			return Pair{A: v + 1, B: v + 2}
		}
		return Pair{}
	}))

	properties.Property("length equals valid count, order kept, idempotent", prop.ForAll(
		func(dense []Pair) bool {
			out := CompactDense(dense)

			valid := 0
			for _, p := range dense {
				if p.Valid() {
					valid++
				}
			}
			if len(out) != valid {
				return false
			}
			for _, p := range out {
				if !p.Valid() {
					return false
				}
			}
			again := CompactDense(out)
			return pairsEqual(again, out)
		},
		genDense,
	))

	properties.TestingRun(t)
}

// TestStrategies_PropertyBased verifies the two pair-stage strategies
// agree over randomly drawn small searches.
func TestStrategies_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("compact and dense emit the same ordered survivors", prop.ForAll(
		func(abound, bbound uint64, n int64) bool {
			cfg := config.Config{
				K: 3, Offset: n,
				ABound: abound, BBound: bbound, CBound: 10,
				Groups: 2, WorkersPerGroup: 2,
				Strategy: config.StrategyCompact,
			}
			filter := NewPairFilter(testSequence(t, 3), cfg)

			compact, err := filter.FilterCompact(context.Background(), nil)
			if err != nil {
				return false
			}
			dense := make([]Pair, abound*bbound)
			if err := filter.FilterDense(context.Background(), dense, nil); err != nil {
				return false
			}
			return pairsEqual(compact, CompactDense(dense))
		},
		gen.UInt64Range(1, 40),
		gen.UInt64Range(1, 40),
		gen.Int64Range(-50, 50),
	))

	properties.TestingRun(t)
}
