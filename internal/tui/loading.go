package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingState drives the spinner shown while the catalog loads.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorHighlight)
	return &LoadingState{spinner: s, message: "Loading trips..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line followed by one skeleton card per
// page slot, laid out like the real grid.
func RenderLoading(l *LoadingState, slots, columns, cardWidth int) string {
	var header string
	if l != nil {
		header = l.spinner.View() + " " + InfoStyle.Render(l.message)
	}

	columns = max(1, columns)
	var rows []string
	for start := 0; start < slots; start += columns {
		n := min(columns, slots-start)
		cells := make([]string, n)
		for i := range cells {
			cells[i] = RenderSkeletonCard(cardWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return header + "\n\n" + strings.Join(rows, "\n")
}
