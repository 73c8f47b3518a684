// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayTriples], [DisplaySummary], [DisplayExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatTriple], [FormatExecutionDuration].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Example: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/christianazinn/triple/internal/config"
	"github.com/christianazinn/triple/internal/search"
	"github.com/christianazinn/triple/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode restricts output to one triple per line.
	Quiet bool
	// Verbose adds per-stage timing detail to the summary.
	Verbose bool
}

// FormatTriple formats one triple as the space-separated index line used
// for both terminal and file output.
func FormatTriple(t search.Triple) string {
	return fmt.Sprintf("%d %d %d", t.A, t.B, t.C)
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// DisplayExecutionConfig prints the search parameters before the run.
// Quiet mode suppresses it entirely.
//
// Parameters:
//   - out: The output writer.
//   - cfg: The validated search configuration.
//   - outputConfig: Output configuration.
func DisplayExecutionConfig(out io.Writer, cfg config.Config, outputConfig OutputConfig) {
	if outputConfig.Quiet {
		return
	}
	theme := ui.GetCurrentTheme()

	fmt.Fprintf(out, "%s%sk-gonal triple search%s\n", theme.Bold, theme.Primary, theme.Reset)
	fmt.Fprintf(out, "  order k:    %d\n", cfg.K)
	fmt.Fprintf(out, "  offset n:   %d\n", cfg.Offset)
	fmt.Fprintf(out, "  bounds:     a ≤ %d, b ≤ %d, c ≤ %d\n", cfg.ABound, cfg.BBound, cfg.CBound)
	fmt.Fprintf(out, "  workers:    %d (%d groups × %d)\n", cfg.Workers(), cfg.Groups, cfg.WorkersPerGroup)
	fmt.Fprintf(out, "  strategy:   %s\n", cfg.Strategy)
	if cfg.Strategy == config.StrategyDense {
		if b, err := cfg.DenseBytes(); err == nil {
			fmt.Fprintf(out, "  slot array: %s\n", FormatBytes(b))
		}
	}
	if cfg.Distinct {
		fmt.Fprintf(out, "  convention: a < b < c\n")
	}
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// DisplayTriples prints the found triples, one per line. In quiet mode the
// lines are bare and script-friendly; otherwise they are numbered and
// colorized.
//
// Parameters:
//   - out: The output writer.
//   - triples: The complete triples in discovery order.
//   - outputConfig: Output configuration.
func DisplayTriples(out io.Writer, triples []search.Triple, outputConfig OutputConfig) {
	if outputConfig.Quiet {
		for _, t := range triples {
			fmt.Fprintln(out, FormatTriple(t))
		}
		return
	}

	theme := ui.GetCurrentTheme()
	if len(triples) == 0 {
		fmt.Fprintf(out, "%sno triples found in range%s\n", theme.Warning, theme.Reset)
		return
	}
	fmt.Fprintf(out, "%s%d triple(s):%s\n", theme.Bold, len(triples), theme.Reset)
	for i, t := range triples {
		fmt.Fprintf(out, "  %s%3d.%s %s\n", theme.Secondary, i+1, theme.Reset, FormatTriple(t))
	}
}

// DisplaySummary prints run statistics after the search. Quiet mode
// suppresses it; Verbose adds per-stage durations.
func DisplaySummary(out io.Writer, res search.Result, total time.Duration, outputConfig OutputConfig) {
	if outputConfig.Quiet {
		return
	}
	theme := ui.GetCurrentTheme()

	fmt.Fprintf(out, "%spairs tested %d, survivors %d, in %s%s\n",
		theme.Info, res.PairsTested, res.Survivors, FormatExecutionDuration(total), theme.Reset)
	if outputConfig.Verbose {
		fmt.Fprintf(out, "  pair filter: %s\n", FormatExecutionDuration(res.Durations.PairFilter))
		if res.Durations.Compact > 0 {
			fmt.Fprintf(out, "  compaction:  %s\n", FormatExecutionDuration(res.Durations.Compact))
		}
		fmt.Fprintf(out, "  extension:   %s\n", FormatExecutionDuration(res.Durations.Extend))
	}
}

// WriteResultsToFile writes the found triples to a file with a commented
// header describing the run.
//
// Parameters:
//   - cfg: The search configuration, recorded in the header.
//   - res: The search result.
//   - total: The total run duration.
//   - outputConfig: Output configuration; no-op when OutputFile is empty.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultsToFile(cfg config.Config, res search.Result, total time.Duration, outputConfig OutputConfig) error {
	if outputConfig.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(outputConfig.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(outputConfig.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# k-gonal triple search results\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# K: %d\n", cfg.K)
	fmt.Fprintf(file, "# N: %d\n", cfg.Offset)
	fmt.Fprintf(file, "# Bounds: %d %d %d\n", cfg.ABound, cfg.BBound, cfg.CBound)
	fmt.Fprintf(file, "# Pairs tested: %d\n", res.PairsTested)
	fmt.Fprintf(file, "# Survivors: %d\n", res.Survivors)
	fmt.Fprintf(file, "# Duration: %s\n", total)
	fmt.Fprintf(file, "\n")

	for _, t := range res.Triples {
		fmt.Fprintln(file, FormatTriple(t))
	}
	return nil
}

// DisplayResults is the unified output path: terminal display plus
// optional file output.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResults(out io.Writer, cfg config.Config, res search.Result, total time.Duration, outputConfig OutputConfig) error {
	DisplayTriples(out, res.Triples, outputConfig)
	DisplaySummary(out, res, total, outputConfig)

	if outputConfig.OutputFile != "" {
		if err := WriteResultsToFile(cfg, res, total, outputConfig); err != nil {
			return err
		}
		if !outputConfig.Quiet {
			theme := ui.GetCurrentTheme()
			fmt.Fprintf(out, "%sresults written to %s%s\n", theme.Secondary, outputConfig.OutputFile, theme.Reset)
		}
	}
	return nil
}
