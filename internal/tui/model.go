// Package tui renders a live dashboard for a running search: per-stage
// progress, host load, and the triples found so far.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/christianazinn/triple/internal/config"
	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/search"
	"github.com/christianazinn/triple/internal/sysmon"
)

// maxVisibleTriples caps the results panel; older entries scroll away.
const maxVisibleTriples = 12

const tickInterval = 500 * time.Millisecond

// Model is the root bubbletea model for the dashboard.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg     config.Config
	version string
	keymap  KeyMap
	spin    spinner.Model

	stages    map[string]search.ProgressUpdate
	result    search.Result
	duration  time.Duration
	startTime time.Time

	cpuPercent float64
	memPercent float64

	width    int
	height   int
	done     bool
	err      error
	exitCode int
}

// NewModel creates a dashboard model bound to a cancellable search context.
func NewModel(parentCtx context.Context, cfg config.Config, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		version:   version,
		keymap:    DefaultKeyMap(),
		spin:      sp,
		stages:    make(map[string]search.ProgressUpdate),
		startTime: time.Now(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd())
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			m.cancel()
			if !m.done {
				m.exitCode = apperrors.ExitErrorCanceled
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProgressMsg:
		m.stages[msg.Stage] = search.ProgressUpdate(msg)
		return m, nil

	case SearchDoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		m.duration = msg.Duration
		m.exitCode = apperrors.ExitCodeFor(msg.Err)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpuPercent = msg.CPUPercent
		m.memPercent = msg.MemPercent
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.viewHeader()
	stages := panelStyle.Width(m.width - 2).Render(m.viewStages())
	results := panelStyle.Width(m.width - 2).Render(m.viewResults())
	footer := m.viewFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, stages, results, footer)
}

func (m Model) viewHeader() string {
	title := headerStyle.Render(fmt.Sprintf("triple search  k=%d n=%d", m.cfg.K, m.cfg.Offset))
	version := versionStyle.Render(m.version)

	var status string
	switch {
	case m.err != nil:
		status = statusErrStyle.Render("ERROR")
	case m.done:
		status = statusDoneStyle.Render("DONE " + m.duration.Round(time.Millisecond).String())
	default:
		status = statusRunStyle.Render(m.spin.View() + "RUNNING " + time.Since(m.startTime).Round(time.Second).String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", version, "  ", status)
}

func (m Model) viewStages() string {
	var b strings.Builder
	for _, stage := range []string{search.StagePairFilter, search.StageExtend} {
		u, ok := m.stages[stage]
		label := stageLabelStyle.Render(fmt.Sprintf("%-12s", stage))
		if !ok {
			b.WriteString(label + stageValueStyle.Render("pending") + "\n")
			continue
		}
		pct := 0.0
		if u.Total > 0 {
			pct = float64(u.Done) / float64(u.Total) * 100
		}
		b.WriteString(label + stageValueStyle.Render(fmt.Sprintf("%d/%d (%.1f%%)", u.Done, u.Total, pct)) + "\n")
	}
	b.WriteString(metricLabelStyle.Render("cpu ") + metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpuPercent)))
	b.WriteString(metricLabelStyle.Render("  mem ") + metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.memPercent)))
	return b.String()
}

func (m Model) viewResults() string {
	if m.err != nil {
		return statusErrStyle.Render(m.err.Error())
	}
	if !m.done {
		return stageLabelStyle.Render("searching...")
	}
	if len(m.result.Triples) == 0 {
		return stageLabelStyle.Render("no triples found in range")
	}

	triples := m.result.Triples
	var b strings.Builder
	fmt.Fprintf(&b, "%d triple(s), %d pairs tested, %d survivors\n",
		len(triples), m.result.PairsTested, m.result.Survivors)
	start := 0
	if len(triples) > maxVisibleTriples {
		start = len(triples) - maxVisibleTriples
	}
	for _, t := range triples[start:] {
		b.WriteString(tripleStyle.Render(fmt.Sprintf("  %d %d %d", t.A, t.B, t.C)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewFooter() string {
	return footerKeyStyle.Render(" q") + footerDescStyle.Render(" quit")
}

// tickCmd returns a command that sends a TickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads host CPU and memory usage off the UI loop.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// Run is the public entry point for the TUI mode. It starts the pipeline,
// runs the dashboard until completion or quit, and returns the search
// result alongside the process exit code.
func Run(ctx context.Context, cfg config.Config, rec search.Recorder, version string) (search.Result, int) {
	// Rebuild styles from the current ui theme (set via InitTheme).
	initTUIStyles()

	updates := make(chan search.ProgressUpdate, 256)
	pipe, err := search.NewPipeline(cfg, search.WithRecorder(rec), search.WithProgress(updates))
	if err != nil {
		return search.Result{}, apperrors.ExitCodeFor(err)
	}

	model := NewModel(ctx, cfg, version)
	defer model.cancel()

	ref := &programRef{}
	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	ref.SetProgram(p)

	go forwardProgress(ref, updates)
	go func() {
		start := time.Now()
		res, runErr := pipe.Run(model.ctx)
		close(updates)
		ref.Send(SearchDoneMsg{Result: res, Err: runErr, Duration: time.Since(start)})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return search.Result{}, apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.result, m.exitCode
	}
	return search.Result{}, apperrors.ExitSuccess
}
