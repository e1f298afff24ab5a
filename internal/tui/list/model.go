package listview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RenderFunc renders an item. The selected parameter indicates whether this
// item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// GridModel is a selectable grid of items with row-based scrolling.
type GridModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the selected item index (0-based).
	selected int

	// columns is the number of items per row (>= 1).
	columns int

	// rows is how many rows fit in the viewport (>= 1).
	rows int

	// firstRow is the first visible row.
	firstRow int
}

// NewGridModel creates a grid with the given layout.
func NewGridModel[T any](items []T, columns, rows int, renderFunc RenderFunc[T]) *GridModel[T] {
	m := &GridModel[T]{
		items:      items,
		renderFunc: renderFunc,
		columns:    max(1, columns),
		rows:       max(1, rows),
	}
	m.clamp()
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *GridModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m *GridModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.selected-m.columns >= 0 {
			m.selected -= m.columns
		}
	case "down", "j":
		if m.selected+m.columns < len(m.items) {
			m.selected += m.columns
		} else if m.rowOf(m.selected) < m.rowOf(len(m.items)-1) {
			// Short last row: land on its last item.
			m.selected = len(m.items) - 1
		}
	case "left":
		if m.selected > 0 {
			m.selected--
		}
	case "right":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
	case "home":
		m.selected = 0
	case "end":
		m.selected = len(m.items) - 1
	}

	m.follow()
	return m, nil
}

// View renders the visible rows.
func (m *GridModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lastRow := min(m.firstRow+m.rows, m.rowCount())
	rendered := make([]string, 0, lastRow-m.firstRow)
	for row := m.firstRow; row < lastRow; row++ {
		start := row * m.columns
		end := min(start+m.columns, len(m.items))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderFunc(m.items[i], i == m.selected))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// SetItems replaces the items, keeping the selection in bounds.
func (m *GridModel[T]) SetItems(items []T) {
	m.items = items
	m.clamp()
}

// SetLayout changes the column and row counts.
func (m *GridModel[T]) SetLayout(columns, rows int) {
	m.columns = max(1, columns)
	m.rows = max(1, rows)
	m.clamp()
}

// ItemCount returns the number of items.
func (m *GridModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *GridModel[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the selected item, or false when the grid is empty.
func (m *GridModel[T]) SelectedItem() (T, bool) {
	if len(m.items) == 0 {
		var zero T
		return zero, false
	}
	return m.items[m.selected], true
}

// SetSelected selects index, capped to valid bounds.
func (m *GridModel[T]) SetSelected(index int) {
	m.selected = index
	m.clamp()
}

// Columns returns the number of items per row.
func (m *GridModel[T]) Columns() int {
	return m.columns
}

// FirstVisibleRow returns the first rendered row.
func (m *GridModel[T]) FirstVisibleRow() int {
	return m.firstRow
}

func (m *GridModel[T]) rowOf(index int) int {
	return index / m.columns
}

func (m *GridModel[T]) rowCount() int {
	return (len(m.items) + m.columns - 1) / m.columns
}

func (m *GridModel[T]) clamp() {
	switch {
	case len(m.items) == 0 || m.selected < 0:
		m.selected = 0
	case m.selected >= len(m.items):
		m.selected = len(m.items) - 1
	}
	m.follow()
}

// follow scrolls so the selected row is visible.
func (m *GridModel[T]) follow() {
	row := m.rowOf(m.selected)
	if row < m.firstRow {
		m.firstRow = row
	}
	if row >= m.firstRow+m.rows {
		m.firstRow = row - m.rows + 1
	}
	if maxFirst := max(0, m.rowCount()-m.rows); m.firstRow > maxFirst {
		m.firstRow = maxFirst
	}
}
