package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/engine"
)

// MarkdownStyleAuto picks a light or dark style from the terminal background.
const MarkdownStyleAuto = "auto"

// RenderMarkdown renders the long description as terminal markdown. If the
// renderer cannot be built or fails, the raw text is returned.
func RenderMarkdown(text, style string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(minCardWidth, width))}
	if style == "" || style == MarkdownStyleAuto {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// RenderTripDetail renders the full detail view body for a trip.
func RenderTripDetail(t catalog.Trip, width int, markdownStyle string) string {
	inner := max(minCardWidth, width-borderPadding*2)

	long := t.LongDescription
	if strings.TrimSpace(long) == "" {
		long = t.Description
	}

	rating := StarStyle.Render(engine.Stars(t)) + " " +
		SubtleStyle.Render("("+engine.FormatRating(t.Rating)+")")

	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render(t.Name),
		rating,
		RenderImageLine(t, inner),
		"",
		RenderMarkdown(long, markdownStyle, inner),
	)
}
