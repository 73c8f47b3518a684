package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christianazinn/triple/internal/config"
	apperrors "github.com/christianazinn/triple/internal/errors"
	"github.com/christianazinn/triple/internal/search"
)

func testModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Config{
		K: 3, Offset: 1,
		ABound: 5, BBound: 5, CBound: 50,
		Groups: 1, WorkersPerGroup: 1,
		Strategy: config.StrategyCompact,
	}
	m := NewModel(context.Background(), cfg, "test")
	t.Cleanup(m.cancel)
	return m
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

// TestModel_ProgressUpdates verifies progress messages land in the stage
// table and render.
func TestModel_ProgressUpdates(t *testing.T) {
	m := sized(testModel(t))

	updated, _ := m.Update(ProgressMsg{Stage: search.StagePairFilter, Done: 5, Total: 15})
	m = updated.(Model)

	u, ok := m.stages[search.StagePairFilter]
	if !ok || u.Done != 5 || u.Total != 15 {
		t.Fatalf("stage state = %+v, ok=%v", u, ok)
	}
	if !strings.Contains(m.View(), "5/15") {
		t.Error("view should render the stage progress")
	}
}

// TestModel_SearchDone verifies the completion message flips the model to
// done and surfaces the triples.
func TestModel_SearchDone(t *testing.T) {
	m := sized(testModel(t))

	res := search.Result{
		Triples:     []search.Triple{{A: 1, B: 2, C: 15}},
		PairsTested: 15,
		Survivors:   2,
	}
	updated, _ := m.Update(SearchDoneMsg{Result: res, Duration: time.Second})
	m = updated.(Model)

	if !m.done {
		t.Error("model should be done")
	}
	if m.exitCode != apperrors.ExitSuccess {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitSuccess)
	}
	if view := m.View(); !strings.Contains(view, "1 2 15") {
		t.Errorf("view should list the triple:\n%s", view)
	}
}

// TestModel_SearchError verifies a failed run maps to its exit code and
// renders the error.
func TestModel_SearchError(t *testing.T) {
	m := sized(testModel(t))

	fail := apperrors.SearchError{Stage: search.StageExtend, Cause: errors.New("boom")}
	updated, _ := m.Update(SearchDoneMsg{Err: fail})
	m = updated.(Model)

	if m.exitCode != apperrors.ExitErrorGeneric {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Error("view should render the failure")
	}
}

// TestModel_QuitKey verifies q cancels the search context and quits.
func TestModel_QuitKey(t *testing.T) {
	m := sized(testModel(t))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("quit should produce a command")
	}
	if msg := cmd(); msg == nil {
		t.Error("quit command should emit a message")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	select {
	case <-m.ctx.Done():
	default:
		t.Error("quit should cancel the search context")
	}
}

// TestModel_ViewBeforeSize verifies rendering with unknown dimensions.
func TestModel_ViewBeforeSize(t *testing.T) {
	m := testModel(t)
	if m.View() != "Initializing..." {
		t.Errorf("View = %q before sizing", m.View())
	}
}

// TestProgramRef_SendWithoutProgram verifies Send is a no-op until the
// program reference is set.
func TestProgramRef_SendWithoutProgram(t *testing.T) {
	ref := &programRef{}
	// Must not panic.
	ref.Send(TickMsg(time.Now()))
}
