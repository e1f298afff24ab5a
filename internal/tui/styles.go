package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 10
	borderPadding = 2

	searchInputCharLimit = 100
	searchInputWidth     = 40
)

// Palette.
const (
	ColorHeader    = lipgloss.Color("99")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorHighlight = lipgloss.Color("212")
	ColorStar      = lipgloss.Color("220")
	ColorCritical  = lipgloss.Color("196")
	ColorSelected  = lipgloss.Color("57")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorLabel).Italic(true)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	StarStyle     = lipgloss.NewStyle().Foreground(ColorStar)
	ActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(ColorSelected).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	SelectedBoxStyle = BoxStyle.BorderForeground(ColorHighlight)

	ErrorBoxStyle = BoxStyle.BorderForeground(ColorCritical)
)
