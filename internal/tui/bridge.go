package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christianazinn/triple/internal/search"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, the bridge
// goroutines need a pointer that survives copies to Send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// ProgressMsg carries one pipeline progress update into the dashboard.
type ProgressMsg search.ProgressUpdate

// SearchDoneMsg carries the pipeline outcome.
type SearchDoneMsg struct {
	Result   search.Result
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic system stat sampling.
type TickMsg time.Time

// SysStatsMsg carries a host CPU/memory reading.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// forwardProgress drains the pipeline progress channel into the program.
// It returns when the channel closes.
func forwardProgress(ref *programRef, updates <-chan search.ProgressUpdate) {
	for u := range updates {
		ref.Send(ProgressMsg(u))
	}
}
