package tui

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Boundary wraps a child model and replaces it with a fallback screen when
// the child panics in Init, Update or View. From the fallback the user can
// resume the same child, rebuild it from scratch, or quit.
type Boundary struct {
	factory func() tea.Model
	child   tea.Model
	logger  zerolog.Logger

	failed     bool
	panicValue any

	width  int
	height int
}

// NewBoundary builds the child with factory and wraps it.
func NewBoundary(factory func() tea.Model, logger zerolog.Logger) *Boundary {
	return &Boundary{
		factory: factory,
		child:   factory(),
		logger:  logger,
	}
}

// Failed reports whether the fallback screen is showing.
func (b *Boundary) Failed() bool {
	return b.failed
}

// Child returns the wrapped model.
func (b *Boundary) Child() tea.Model {
	return b.child
}

// Init initializes the child.
//
//nolint:nonamedreturns // The deferred recover replaces cmd.
func (b *Boundary) Init() (cmd tea.Cmd) {
	defer b.recoverPanic("init", &cmd)
	return b.child.Init()
}

// Update forwards msg to the child, or handles the fallback keys.
func (b *Boundary) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		b.width, b.height = size.Width, size.Height
	}

	if b.failed {
		return b, b.handleFallbackKey(msg)
	}

	return b, b.updateChild(msg)
}

//nolint:nonamedreturns // The deferred recover replaces cmd.
func (b *Boundary) updateChild(msg tea.Msg) (cmd tea.Cmd) {
	defer b.recoverPanic("update", &cmd)
	next, cmd := b.child.Update(msg)
	if next != nil {
		b.child = next
	}
	return cmd
}

func (b *Boundary) handleFallbackKey(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "t":
		b.failed = false
		b.panicValue = nil
		return nil
	case "r":
		b.logger.Info().Str("component", "tui").Msg("rebuilding view after panic")
		b.failed = false
		b.panicValue = nil
		b.child = b.factory()
		cmds := []tea.Cmd{b.Init()}
		if b.width > 0 {
			size := tea.WindowSizeMsg{Width: b.width, Height: b.height}
			cmds = append(cmds, func() tea.Msg { return size })
		}
		return tea.Batch(cmds...)
	}
	return nil
}

// View renders the child, or the fallback screen after a panic.
func (b *Boundary) View() string {
	if b.failed {
		return b.renderFallback()
	}
	if out, ok := b.viewChild(); ok {
		return out
	}
	return b.renderFallback()
}

//nolint:nonamedreturns // The deferred recover clears ok.
func (b *Boundary) viewChild() (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.trip("view", r)
			out, ok = "", false
		}
	}()
	return b.child.View(), true
}

// recoverPanic must be deferred directly so recover sees the panic.
func (b *Boundary) recoverPanic(phase string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		b.trip(phase, r)
		*cmd = nil
	}
}

func (b *Boundary) trip(phase string, r any) {
	b.failed = true
	b.panicValue = r
	b.logger.Error().
		Str("component", "tui").
		Str("phase", phase).
		Str("panic", fmt.Sprint(r)).
		Str("stack", string(debug.Stack())).
		Msg("view panicked")
}

func (b *Boundary) renderFallback() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		CriticalStyle.Render("Something went wrong"),
		"",
		ValueStyle.Render("Unexpected error. Press r to reload the view."),
	)
	if b.logger.GetLevel() <= zerolog.DebugLevel && b.panicValue != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", SubtleStyle.Render(fmt.Sprint(b.panicValue)))
	}
	body = lipgloss.JoinVertical(lipgloss.Left, body, "",
		LabelStyle.Render("[t] Try again   [r] Reload   [q] Quit"))

	width := defaultWidth
	if b.width > 0 {
		width = min(b.width, defaultWidth)
	}
	return ErrorBoxStyle.Width(width - borderPadding).Render(body)
}
