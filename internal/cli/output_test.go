package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/christianazinn/triple/internal/config"
	"github.com/christianazinn/triple/internal/search"
	"github.com/christianazinn/triple/internal/ui"
)

func testOutputConfigState(t *testing.T) {
	t.Helper()
	orig := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(orig) })
}

func sampleResult() search.Result {
	return search.Result{
		Triples:     []search.Triple{{A: 1, B: 2, C: 15}, {A: 1, B: 5, C: 32}},
		PairsTested: 15,
		Survivors:   2,
		Durations: search.StageDurations{
			PairFilter: 3 * time.Millisecond,
			Extend:     5 * time.Millisecond,
		},
	}
}

// TestFormatTriple verifies the one-line index format.
func TestFormatTriple(t *testing.T) {
	got := FormatTriple(search.Triple{A: 1, B: 2, C: 15})
	if got != "1 2 15" {
		t.Errorf("FormatTriple = %q, want %q", got, "1 2 15")
	}
}

// TestFormatExecutionDuration tests duration formatting across magnitudes.
func TestFormatExecutionDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"microseconds", 500 * time.Microsecond, "500µs"},
		{"milliseconds", 250 * time.Millisecond, "250ms"},
		{"seconds", 3 * time.Second, "3s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatExecutionDuration(tt.d); got != tt.want {
				t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

// TestDisplayTriples_Quiet verifies quiet mode emits bare lines only.
func TestDisplayTriples_Quiet(t *testing.T) {
	testOutputConfigState(t)
	var buf bytes.Buffer

	DisplayTriples(&buf, sampleResult().Triples, OutputConfig{Quiet: true})

	want := "1 2 15\n1 5 32\n"
	if buf.String() != want {
		t.Errorf("quiet output = %q, want %q", buf.String(), want)
	}
}

// TestDisplayTriples_Standard verifies the numbered listing and the
// empty-result message.
func TestDisplayTriples_Standard(t *testing.T) {
	testOutputConfigState(t)

	t.Run("with results", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayTriples(&buf, sampleResult().Triples, OutputConfig{})

		out := buf.String()
		if !strings.Contains(out, "2 triple(s):") {
			t.Errorf("output should announce the count: %q", out)
		}
		if !strings.Contains(out, "1 2 15") || !strings.Contains(out, "1 5 32") {
			t.Errorf("output should list every triple: %q", out)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayTriples(&buf, nil, OutputConfig{})
		if !strings.Contains(buf.String(), "no triples found") {
			t.Errorf("output should report an empty result: %q", buf.String())
		}
	})
}

// TestDisplaySummary verifies quiet suppression and verbose stage detail.
func TestDisplaySummary(t *testing.T) {
	testOutputConfigState(t)
	res := sampleResult()

	t.Run("quiet suppresses", func(t *testing.T) {
		var buf bytes.Buffer
		DisplaySummary(&buf, res, time.Second, OutputConfig{Quiet: true})
		if buf.Len() != 0 {
			t.Errorf("quiet summary should be empty, got %q", buf.String())
		}
	})

	t.Run("standard", func(t *testing.T) {
		var buf bytes.Buffer
		DisplaySummary(&buf, res, time.Second, OutputConfig{})
		out := buf.String()
		if !strings.Contains(out, "pairs tested 15") || !strings.Contains(out, "survivors 2") {
			t.Errorf("summary missing counters: %q", out)
		}
		if strings.Contains(out, "pair filter:") {
			t.Errorf("stage detail should need Verbose: %q", out)
		}
	})

	t.Run("verbose adds stages", func(t *testing.T) {
		var buf bytes.Buffer
		DisplaySummary(&buf, res, time.Second, OutputConfig{Verbose: true})
		out := buf.String()
		if !strings.Contains(out, "pair filter:") || !strings.Contains(out, "extension:") {
			t.Errorf("verbose summary missing stage detail: %q", out)
		}
	})
}

// TestDisplayExecutionConfig verifies the pre-run banner.
func TestDisplayExecutionConfig(t *testing.T) {
	testOutputConfigState(t)
	cfg := config.Config{
		K: 3, Offset: 1,
		ABound: 5, BBound: 5, CBound: 50,
		Groups: 2, WorkersPerGroup: 2,
		Strategy: config.StrategyCompact,
	}

	var buf bytes.Buffer
	DisplayExecutionConfig(&buf, cfg, OutputConfig{})
	out := buf.String()
	for _, want := range []string{"order k:    3", "offset n:   1", "strategy:   compact"} {
		if !strings.Contains(out, want) {
			t.Errorf("banner missing %q: %q", want, out)
		}
	}

	t.Run("quiet suppresses", func(t *testing.T) {
		var quiet bytes.Buffer
		DisplayExecutionConfig(&quiet, cfg, OutputConfig{Quiet: true})
		if quiet.Len() != 0 {
			t.Errorf("quiet banner should be empty, got %q", quiet.String())
		}
	})

	t.Run("dense adds slot estimate", func(t *testing.T) {
		dcfg := cfg
		dcfg.Strategy = config.StrategyDense
		var buf bytes.Buffer
		DisplayExecutionConfig(&buf, dcfg, OutputConfig{})
		if !strings.Contains(buf.String(), "slot array: 400 B") {
			t.Errorf("dense banner missing estimate: %q", buf.String())
		}
	})
}

// TestFormatBytes covers the unit boundaries.
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		b    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{16 * 1024 * 1024, "16.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.b); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.b, got, tt.want)
		}
	}
}

// TestWriteResultsToFile verifies the header block, the triple lines, and
// directory creation.
func TestWriteResultsToFile(t *testing.T) {
	testOutputConfigState(t)
	cfg := config.Config{K: 3, Offset: 1, ABound: 5, BBound: 5, CBound: 50}
	res := sampleResult()

	path := filepath.Join(t.TempDir(), "nested", "results.txt")
	err := WriteResultsToFile(cfg, res, time.Second, OutputConfig{OutputFile: path})
	if err != nil {
		t.Fatalf("WriteResultsToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	out := string(data)
	for _, want := range []string{"# K: 3", "# N: 1", "# Survivors: 2", "1 2 15", "1 5 32"} {
		if !strings.Contains(out, want) {
			t.Errorf("file missing %q:\n%s", want, out)
		}
	}
}

// TestWriteResultsToFile_NoPath verifies the empty path is a no-op.
func TestWriteResultsToFile_NoPath(t *testing.T) {
	if err := WriteResultsToFile(config.Config{}, search.Result{}, 0, OutputConfig{}); err != nil {
		t.Errorf("empty OutputFile should be a no-op, got %v", err)
	}
}
