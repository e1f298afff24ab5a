package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/engine"
)

// Card layout.
const (
	defaultCardWidth = 34
	minCardWidth     = 24
	cardHeight       = 7 // border(2) + name, stars, description(2), image
	cardGap          = 1
	cardDescLines    = 2
	skeletonChar     = "░"
)

// imageUnavailable is shown for missing or unusable image URLs.
const imageUnavailable = "Image not available"

// RenderStars renders a rating as coloured star glyphs followed by the value.
func RenderStars(t catalog.Trip) string {
	return StarStyle.Render(engine.Stars(t)) + " " + SubtleStyle.Render(engine.FormatRating(t.Rating))
}

// RenderImageLine renders the image location cut to width, or the
// unavailable placeholder.
func RenderImageLine(t catalog.Trip, width int) string {
	u, ok := t.ImageURL()
	if !ok {
		return InfoStyle.Render(imageUnavailable)
	}
	return SubtleStyle.Render(truncateLine("▣ "+u.Host+u.Path, width))
}

// RenderTripCard renders one trip card of the given outer width.
func RenderTripCard(t catalog.Trip, selected bool, width int) string {
	inner := max(minCardWidth, width) - borderPadding*2
	style := BoxStyle
	if selected {
		style = SelectedBoxStyle
	}

	name := HeaderStyle.Render(truncateLine(t.Name, inner))
	desc := wrapLines(t.Description, inner, cardDescLines)

	body := lipgloss.JoinVertical(lipgloss.Left,
		name,
		RenderStars(t),
		ValueStyle.Render(desc),
		RenderImageLine(t, inner),
	)
	return style.Width(inner+borderPadding).MarginRight(cardGap).Render(body)
}

// RenderSkeletonCard renders a placeholder card shown while loading.
func RenderSkeletonCard(width int) string {
	inner := max(minCardWidth, width) - borderPadding*2
	bar := func(n int) string { return SubtleStyle.Render(strings.Repeat(skeletonChar, max(1, n))) }
	body := lipgloss.JoinVertical(lipgloss.Left,
		bar(inner*2/3),
		bar(inner/3),
		bar(inner),
		bar(inner*3/4),
		bar(inner/2),
	)
	return BoxStyle.Width(inner+borderPadding).MarginRight(cardGap).Render(body)
}

// gridLayout returns columns, visible rows and card width for a viewport.
//
//nolint:nonamedreturns // Named returns document the three values.
func gridLayout(width, height, chrome int) (columns, rows, cardWidth int) {
	cardWidth = defaultCardWidth
	columns = max(1, width/(cardWidth+cardGap))
	if columns == 1 {
		cardWidth = max(minCardWidth, width-cardGap)
	}
	rows = max(1, (height-chrome)/cardHeight)
	return columns, rows, cardWidth
}

// truncateLine cuts s to n runes, ending with "…" when cut.
func truncateLine(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n <= 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}

// wrapLines word-wraps s to width and keeps at most maxLines lines, padding
// with blank lines so every card has the same height.
func wrapLines(s string, width, maxLines int) string {
	words := strings.Fields(s)
	lines := make([]string, 0, maxLines)
	var cur strings.Builder
	for _, w := range words {
		switch {
		case cur.Len() == 0:
			cur.WriteString(w)
		case len([]rune(cur.String()))+1+len([]rune(w)) <= width:
			cur.WriteString(" " + w)
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(w)
		}
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] = truncateLine(lines[maxLines-1]+" …", width)
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = truncateLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}
