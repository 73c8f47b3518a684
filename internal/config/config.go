package config

import (
	"flag"
	"fmt"
	"io"
	"math/bits"
	"time"

	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/polygonal"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "TRIPLE_"

// Search strategies for the pair stage.
const (
	// StrategyCompact filters pairs through per-chunk counting and an
	// exclusive prefix sum, never materializing the dense slot array.
	StrategyCompact = "compact"
	// StrategyDense writes survivors into one slot per (a, b) combination
	// and compacts afterwards. Memory cost is O(abound·bbound).
	StrategyDense = "dense"
)

// DenseSlotBytes is the size of one dense slot: a candidate pair of two
// 64-bit indices.
const DenseSlotBytes = 16

// DefaultTimeout bounds a whole run unless overridden.
const DefaultTimeout = 10 * time.Minute

// Config is the immutable parameter set for one search run. It is
// constructed once by ParseConfig and never mutated afterwards; every
// component receives it by value.
type Config struct {
	// K is the polygon order (3 = triangular numbers).
	K uint64
	// Offset is the D(n) offset added to each pairwise product.
	Offset int64
	// ABound, BBound, CBound are the inclusive index search bounds.
	ABound uint64
	BBound uint64
	CBound uint64

	// Groups and WorkersPerGroup tune parallelism only, never correctness.
	// Zero means "choose from the hardware".
	Groups          int
	WorkersPerGroup int

	// Strategy selects the pair-stage result scheme (compact or dense).
	Strategy string
	// Distinct restricts candidates to strictly increasing index triples
	// (a < b < c) instead of the default a ≤ b ≤ c convention.
	Distinct bool

	// Timeout bounds the whole run.
	Timeout time.Duration

	// Output options.
	Quiet      bool
	Verbose    bool
	OutputFile string
	NoColor    bool

	// Verify re-checks every emitted triple with the GMP oracle.
	Verify bool

	// TUI launches the live dashboard instead of plain CLI output.
	TUI bool
	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string
}

// Workers returns the total worker count for a stage.
func (c Config) Workers() int {
	return c.Groups * c.WorkersPerGroup
}

// MaxIndex returns the largest k-gonal index any stage will evaluate.
func (c Config) MaxIndex() uint64 {
	m := c.ABound
	if c.BBound > m {
		m = c.BBound
	}
	if c.CBound > m {
		m = c.CBound
	}
	return m
}

// DenseBytes estimates the allocation size of the dense slot array for the
// dense strategy. The product is tracked in 128 bits so a pathological
// bound pair reports an overflow instead of a wrapped estimate.
func (c Config) DenseBytes() (uint64, error) {
	hi, slots := bits.Mul64(c.ABound, c.BBound)
	if hi != 0 {
		return 0, apperrors.NewOverflowError("dense estimate", "abound=%d bbound=%d", c.ABound, c.BBound)
	}
	hi, b := bits.Mul64(slots, DenseSlotBytes)
	if hi != 0 {
		return 0, apperrors.NewOverflowError("dense estimate", "%d slots", slots)
	}
	return b, nil
}

// ParseConfig parses command-line arguments into a Config, applying
// environment variable overrides for flags not explicitly set
// (CLI flags > Environment variables > Defaults) and validating the result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag parsing errors and usage text.
//
// Returns:
//   - Config: The parsed, validated configuration.
//   - error: flag.ErrHelp if --help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (Config, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg Config
	fs.Uint64Var(&cfg.K, "k", 3, "polygon order of the k-gonal numbers (>= 3)")
	fs.Int64Var(&cfg.Offset, "n", 1, "D(n) offset added to each pairwise product")
	fs.Uint64Var(&cfg.ABound, "abound", 1000, "inclusive upper bound for index a")
	fs.Uint64Var(&cfg.BBound, "bbound", 1000, "inclusive upper bound for index b")
	fs.Uint64Var(&cfg.CBound, "cbound", 100000, "inclusive upper bound for index c")
	fs.IntVar(&cfg.Groups, "groups", 0, "worker group count (0 = derive from CPU count)")
	fs.IntVar(&cfg.WorkersPerGroup, "workers", 0, "workers per group (0 = derive from CPU count)")
	fs.StringVar(&cfg.Strategy, "strategy", StrategyCompact, "pair stage strategy: compact or dense")
	fs.BoolVar(&cfg.Distinct, "distinct", false, "require strictly distinct indices (a < b < c)")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "global timeout for the run")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "machine-readable output: one \"a b c\" line per triple")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose run summary")
	fs.BoolVar(&cfg.Verbose, "v", false, "shorthand for -verbose")
	fs.StringVar(&cfg.OutputFile, "output", "", "write results to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.BoolVar(&cfg.Verify, "verify", false, "re-check emitted triples with the GMP oracle")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the live dashboard")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Searches three bounded index ranges for triples (a, b, c) whose k-gonal\n")
		fmt.Fprintf(errWriter, "values have property D(n): every pairwise product plus n is a perfect square.\n\n")
		fmt.Fprintf(errWriter, "Flags (each may also be set via the %s* environment variables):\n", EnvPrefix)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, apperrors.NewConfigError("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveParallelism(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants. It is called once by
// ParseConfig; every rejection happens here, before any stage launches.
func (c Config) Validate() error {
	if c.K < polygonal.MinOrder {
		return apperrors.NewConfigError("-k must be at least %d, got %d", polygonal.MinOrder, c.K)
	}
	for _, bound := range []struct {
		name  string
		value uint64
	}{
		{"abound", c.ABound},
		{"bbound", c.BBound},
		{"cbound", c.CBound},
	} {
		if bound.value == 0 {
			return apperrors.NewConfigError("-%s must be positive", bound.name)
		}
	}
	if c.Groups <= 0 || c.WorkersPerGroup <= 0 {
		return apperrors.NewConfigError("worker tuning must be positive (groups=%d, workers=%d)", c.Groups, c.WorkersPerGroup)
	}
	if c.Strategy != StrategyCompact && c.Strategy != StrategyDense {
		return apperrors.NewConfigError("-strategy must be %q or %q, got %q", StrategyCompact, StrategyDense, c.Strategy)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive")
	}
	// Reject parameter combinations whose intermediates cannot fit in
	// 64 bits; the stages assume validated ranges and never re-check.
	if err := polygonal.CheckRange(c.K, c.MaxIndex(), c.Offset); err != nil {
		return err
	}
	return nil
}
