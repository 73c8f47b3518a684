package search

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/christianazinn/triple/internal/config"
	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/logging"
	"github.com/christianazinn/triple/internal/polygonal"
	"github.com/christianazinn/triple/internal/sysmon"
)

// tracerName identifies the pipeline's trace spans.
const tracerName = "github.com/christianazinn/triple/internal/search"

// Pipeline sequences the three search stages over a validated
// configuration. It owns every intermediate buffer: the dense slot array
// (dense strategy only), the compacted pair list, and the result list.
// Control flow is strictly linear; a stage's output is never read before
// the stage's barrier has passed.
type Pipeline struct {
	cfg      config.Config
	seq      polygonal.Sequence
	logger   logging.Logger
	recorder Recorder
	progress chan<- ProgressUpdate
	availMem func() uint64
}

// Option configures a Pipeline during construction.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithProgress sets a channel receiving stage progress updates. Sends are
// non-blocking: a slow consumer loses updates, never stalls the search.
func WithProgress(ch chan<- ProgressUpdate) Option {
	return func(p *Pipeline) { p.progress = ch }
}

// WithAvailableMemory overrides the system memory probe used by the dense
// strategy's budget check.
func WithAvailableMemory(f func() uint64) Option {
	return func(p *Pipeline) { p.availMem = f }
}

// NewPipeline creates a Pipeline for the given configuration. The
// configuration must already be validated; NewPipeline re-derives only the
// sequence, which re-checks the polygon order.
func NewPipeline(cfg config.Config, opts ...Option) (*Pipeline, error) {
	seq, err := polygonal.NewSequence(cfg.K)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:      cfg,
		seq:      seq,
		logger:   logging.Nop(),
		recorder: NopRecorder{},
		availMem: sysmon.AvailableMemory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the full search and returns the complete triples in
// pair-discovery order. A failed stage aborts the run; no partial result
// is returned.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "search.run", trace.WithAttributes(
		attribute.Int64("k", int64(p.cfg.K)),
		attribute.Int64("n", p.cfg.Offset),
		attribute.String("strategy", p.cfg.Strategy),
	))
	defer span.End()

	var res Result
	start := time.Now()

	pairs, err := p.runPairStage(ctx, tracer, &res)
	if err != nil {
		return Result{}, apperrors.SearchError{Stage: StagePairFilter, Cause: err}
	}

	triples, err := p.runExtendStage(ctx, tracer, pairs, &res)
	if err != nil {
		return Result{}, apperrors.SearchError{Stage: StageExtend, Cause: err}
	}

	// Emit in pair order, dropping sentinels.
	res.Triples = make([]Triple, 0, len(triples))
	for _, t := range triples {
		if t.Complete() {
			res.Triples = append(res.Triples, t)
		}
	}
	p.recorder.AddTriplesFound(uint64(len(res.Triples)))
	res.Durations.Total = time.Since(start)
	span.SetAttributes(attribute.Int("triples", len(res.Triples)))

	p.logger.Info("search complete",
		logging.Uint64("pairs_tested", res.PairsTested),
		logging.Uint64("survivors", res.Survivors),
		logging.Int("triples", len(res.Triples)))
	return res, nil
}

// runPairStage executes PairFilter and the Compactor under the configured
// strategy and returns the compacted pair list. Its return is the barrier:
// every filter write is complete before the extender can observe the list.
func (p *Pipeline) runPairStage(ctx context.Context, tracer trace.Tracer, res *Result) ([]Pair, error) {
	filter := NewPairFilter(p.seq, p.cfg)
	total := filter.TotalCandidates()
	res.PairsTested = total

	ctx, span := tracer.Start(ctx, "search."+StagePairFilter, trace.WithAttributes(
		attribute.Int64("candidates", int64(total)),
	))
	defer span.End()

	start := time.Now()
	reporter := p.stageReporter(StagePairFilter, total)

	var pairs []Pair
	var err error
	switch p.cfg.Strategy {
	case config.StrategyDense:
		pairs, err = p.runDense(ctx, filter, reporter, res)
	default:
		pairs, err = filter.FilterCompact(ctx, reporter)
	}
	if err != nil {
		return nil, err
	}

	res.Durations.PairFilter = time.Since(start)
	res.Survivors = uint64(len(pairs))
	p.recorder.AddPairsTested(total)
	p.recorder.AddPairsSurvived(res.Survivors)
	p.recorder.ObserveStageDuration(StagePairFilter, res.Durations.PairFilter)
	p.logger.Info("pair filter complete",
		logging.Uint64("candidates", total),
		logging.Uint64("survivors", res.Survivors),
		logging.Float64("seconds", res.Durations.PairFilter.Seconds()))
	return pairs, nil
}

// runDense materializes the dense slot array and compacts it, keeping the
// two sub-stages separated by the filter's barrier. The allocation is
// checked against available system memory first and reported as a
// MemoryError rather than left to a failing allocation.
func (p *Pipeline) runDense(ctx context.Context, filter *PairFilter, reporter func(uint64), res *Result) ([]Pair, error) {
	need, err := p.cfg.DenseBytes()
	if err != nil {
		return nil, err
	}
	if avail := p.availMem(); avail > 0 && need > avail {
		return nil, apperrors.MemoryError{Requested: need, Available: avail}
	}
	p.logger.Debug("dense slot array",
		logging.Uint64("bytes", need),
		logging.Uint64("slots", p.cfg.ABound*p.cfg.BBound))

	dense := make([]Pair, p.cfg.ABound*p.cfg.BBound)
	if err := filter.FilterDense(ctx, dense, reporter); err != nil {
		return nil, err
	}

	start := time.Now()
	pairs := CompactDense(dense)
	res.Durations.Compact = time.Since(start)
	p.recorder.ObserveStageDuration(StageCompact, res.Durations.Compact)
	return pairs, nil
}

// runExtendStage executes TripleExtender over the compacted list.
func (p *Pipeline) runExtendStage(ctx context.Context, tracer trace.Tracer, pairs []Pair, res *Result) ([]Triple, error) {
	ctx, span := tracer.Start(ctx, "search."+StageExtend, trace.WithAttributes(
		attribute.Int("pairs", len(pairs)),
	))
	defer span.End()

	start := time.Now()
	extender := NewTripleExtender(p.seq, p.cfg)
	triples, err := extender.Extend(ctx, pairs, p.stageReporter(StageExtend, uint64(len(pairs))))
	if err != nil {
		return nil, err
	}
	res.Durations.Extend = time.Since(start)
	p.recorder.ObserveStageDuration(StageExtend, res.Durations.Extend)
	p.logger.Info("extension complete",
		logging.Int("pairs", len(pairs)),
		logging.Float64("seconds", res.Durations.Extend.Seconds()))
	return triples, nil
}

// stageReporter returns a concurrency-safe progress callback feeding the
// progress channel, or nil when no channel is configured.
func (p *Pipeline) stageReporter(stage string, total uint64) func(uint64) {
	if p.progress == nil {
		return nil
	}
	var done atomic.Uint64
	return func(n uint64) {
		d := done.Add(n)
		select {
		case p.progress <- ProgressUpdate{Stage: stage, Done: d, Total: total}:
		default:
		}
	}
}
