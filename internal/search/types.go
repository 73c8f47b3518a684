package search

import "time"

// Pair is a candidate index pair (a, b). Indices start at 1; the zero
// value is the explicit "no pair here" sentinel and never a legitimate
// candidate.
type Pair struct {
	A uint64
	B uint64
}

// Valid reports whether the pair is sentinel-free.
func (p Pair) Valid() bool { return p.A != 0 && p.B != 0 }

// NotFound is the sentinel recorded when no c in range extends a pair.
// Legitimate extensions always have c ≥ 1.
const NotFound uint64 = 0

// Triple is a search result: a surviving pair and the smallest c that
// extends it, or NotFound.
type Triple struct {
	A uint64
	B uint64
	C uint64
}

// Complete reports whether the triple carries a found c.
func (t Triple) Complete() bool { return t.C != NotFound }

// Stage names used in logs, metrics, and trace spans.
const (
	StagePairFilter = "pairfilter"
	StageCompact    = "compact"
	StageExtend     = "extend"
)

// StageDurations records wall-clock time per pipeline stage and for the
// whole run.
type StageDurations struct {
	PairFilter time.Duration
	Compact    time.Duration
	Extend     time.Duration
	Total      time.Duration
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Triples holds the complete triples in pair-discovery order.
	Triples []Triple
	// PairsTested is the number of (a, b) candidates evaluated.
	PairsTested uint64
	// Survivors is the number of pairs that passed the D(n) pair test.
	Survivors uint64
	// Durations records per-stage wall-clock time.
	Durations StageDurations
}

// ProgressUpdate reports stage progress to an observing collaborator.
// Done and Total are in stage-specific units (candidates for the pair
// filter, pairs for the extender).
type ProgressUpdate struct {
	Stage string
	Done  uint64
	Total uint64
}

// Recorder receives search counters and stage timings. Implementations
// must be safe for concurrent use.
type Recorder interface {
	AddPairsTested(n uint64)
	AddPairsSurvived(n uint64)
	AddTriplesFound(n uint64)
	ObserveStageDuration(stage string, d time.Duration)
}

// NopRecorder discards all observations.
type NopRecorder struct{}

// AddPairsTested discards the observation.
func (NopRecorder) AddPairsTested(uint64) {}

// AddPairsSurvived discards the observation.
func (NopRecorder) AddPairsSurvived(uint64) {}

// AddTriplesFound discards the observation.
func (NopRecorder) AddTriplesFound(uint64) {}

// ObserveStageDuration discards the observation.
func (NopRecorder) ObserveStageDuration(string, time.Duration) {}
