package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/christianazinn/triple/internal/cli"
	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/logging"
	"github.com/christianazinn/triple/internal/metrics"
	"github.com/christianazinn/triple/internal/polygonal"
	"github.com/christianazinn/triple/internal/search"
	"github.com/christianazinn/triple/internal/sysmon"
)

// sysmonInterval is how often verbose runs log host resource usage.
const sysmonInterval = 5 * time.Second

// runSearch orchestrates the plain CLI search: pipeline execution,
// progress display, verification, and output.
func (a *Application) runSearch(ctx context.Context, out io.Writer) int {
	logger := a.newLogger()

	recorder, stopMetrics := a.startMetricsServer(ctx, logger)
	defer stopMetrics()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	cli.DisplayExecutionConfig(out, a.Config, outputCfg)

	opts := []search.Option{
		search.WithLogger(logger),
		search.WithRecorder(recorder),
	}

	// Spinner-based progress in interactive mode only.
	var updates chan search.ProgressUpdate
	progressDone := make(chan struct{})
	if !a.Config.Quiet {
		updates = make(chan search.ProgressUpdate, 256)
		opts = append(opts, search.WithProgress(updates))
		reporter := cli.NewProgressReporter(a.ErrWriter, updates)
		go func() {
			reporter.Run(ctx)
			close(progressDone)
		}()
	} else {
		close(progressDone)
	}

	if a.Config.Verbose {
		go sysmon.Watch(ctx, sysmonInterval, logger)
	}

	pipeline, err := search.NewPipeline(a.Config, opts...)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()

	res, err := pipeline.Run(ctx)

	if updates != nil {
		close(updates)
	}
	<-progressDone

	total := time.Since(start)
	delta := collector.Snapshot().Since(before)
	logger.Debug("run footprint",
		logging.Uint64("sys_growth_bytes", delta.SysGrowth),
		logging.Uint64("heap_alloc_bytes", delta.HeapAllocNow),
		logging.Uint64("gc_pause_ns", delta.GCPauseNs))

	if err != nil {
		return a.reportRunError(err, total)
	}
	return a.finishRun(res, out, logger)
}

// reportRunError prints a run failure and maps it to the exit code,
// upgrading a deadline hit to an explicit timeout error.
func (a *Application) reportRunError(err error, elapsed time.Duration) int {
	if apperrors.IsContextError(err) && elapsed >= a.Config.Timeout {
		err = apperrors.TimeoutError{Operation: "search", Limit: a.Config.Timeout}
	}
	fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	return apperrors.ExitCodeFor(err)
}

// finishRun verifies (when requested) and renders a successful result.
func (a *Application) finishRun(res search.Result, out io.Writer, logger logging.Logger) int {
	if a.Config.Verify {
		if bad, ok := a.verifyTriples(res.Triples); !ok {
			fmt.Fprintf(a.ErrWriter, "Error: oracle rejected triple %d %d %d\n", bad.A, bad.B, bad.C)
			return apperrors.ExitErrorMismatch
		}
		logger.Debug("oracle verification passed", logging.Int("triples", len(res.Triples)))
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResults(out, a.Config, res, res.Durations.Total, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// verifyTriples re-checks every emitted triple with the arbitrary-precision
// oracle. Returns the first rejected triple, if any.
func (a *Application) verifyTriples(triples []search.Triple) (search.Triple, bool) {
	oracle := polygonal.NewOracle(a.Config.K, a.Config.Offset)
	for _, t := range triples {
		if !oracle.IsTriple(t.A, t.B, t.C) {
			return t, false
		}
	}
	return search.Triple{}, true
}
