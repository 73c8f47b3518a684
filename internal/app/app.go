// Package app wires configuration, logging, metrics, and the search
// pipeline into the runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/christianazinn/triple/internal/config"
	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/logging"
	"github.com/christianazinn/triple/internal/search"
	"github.com/christianazinn/triple/internal/server"
	"github.com/christianazinn/triple/internal/tui"
	"github.com/christianazinn/triple/internal/ui"
)

// Application represents the triple search application instance.
type Application struct {
	Config    config.Config
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer) (*Application, error) {
	programName := "triple"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, ErrWriter: errWriter}, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runSearch(ctx, out)
}

// runTUI launches the interactive dashboard and handles post-run output.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	logger := a.newLogger()
	recorder, stopMetrics := a.startMetricsServer(ctx, logger)
	defer stopMetrics()

	res, exitCode := tui.Run(ctx, a.Config, recorder, Version)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}
	return a.finishRun(res, out, logger)
}

// newLogger builds the run logger. Quiet mode silences it entirely; the
// zerolog global level set in Run gates verbosity otherwise.
func (a *Application) newLogger() logging.Logger {
	if a.Config.Quiet {
		return logging.Nop()
	}
	return logging.NewLogger(a.ErrWriter, "triple")
}

// startMetricsServer starts the Prometheus listener when configured and
// returns the recorder the pipeline should feed. The returned stop
// function is idempotent through the context it cancels.
func (a *Application) startMetricsServer(ctx context.Context, logger logging.Logger) (search.Recorder, func()) {
	if a.Config.MetricsAddr == "" {
		return search.NopRecorder{}, func() {}
	}

	metrics := server.NewMetrics()
	srv := server.NewServer(a.Config.MetricsAddr, metrics, logger)

	srvCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := srv.Run(srvCtx); err != nil {
			logger.Error("metrics server failed", err)
		}
	}()
	return metrics, cancel
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
