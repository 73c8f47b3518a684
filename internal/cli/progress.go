package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/christianazinn/triple/internal/search"
)

// ProgressRefreshRate defines the refresh frequency of the spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner abstracts the terminal spinner so progress consumption can be
// tested without a TTY. It defines the essential controls: starting,
// stopping, and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(w io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(w))
	return &realSpinner{s}
}

// stageLabel maps a pipeline stage name to its display label.
func stageLabel(stage string) string {
	switch stage {
	case search.StagePairFilter:
		return "filtering pairs"
	case search.StageCompact:
		return "compacting"
	case search.StageExtend:
		return "extending"
	default:
		return stage
	}
}

// FormatProgress renders one update as the spinner suffix.
func FormatProgress(u search.ProgressUpdate) string {
	if u.Total == 0 {
		return fmt.Sprintf(" %s", stageLabel(u.Stage))
	}
	pct := float64(u.Done) / float64(u.Total) * 100
	return fmt.Sprintf(" %s %d/%d (%.1f%%)", stageLabel(u.Stage), u.Done, u.Total, pct)
}

// ProgressReporter drives a spinner from pipeline progress updates.
type ProgressReporter struct {
	spin    Spinner
	updates <-chan search.ProgressUpdate
}

// NewProgressReporter creates a reporter consuming updates and animating
// on w.
func NewProgressReporter(w io.Writer, updates <-chan search.ProgressUpdate) *ProgressReporter {
	return &ProgressReporter{
		spin:    newSpinner(w),
		updates: updates,
	}
}

// Run consumes updates until the channel closes or ctx is canceled,
// keeping the spinner suffix current. It blocks; callers run it in its
// own goroutine and close the channel after the pipeline's barrier.
func (r *ProgressReporter) Run(ctx context.Context) {
	r.spin.Start()
	defer r.spin.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-r.updates:
			if !ok {
				return
			}
			r.spin.UpdateSuffix(FormatProgress(u))
		}
	}
}
