package tui

import (
	"strings"

	"github.com/rshade/tripexplorer/internal/engine"
)

// RenderPagination renders the page control for a result. It is empty when
// there is at most one page. Previous/next are dimmed at the ends.
func RenderPagination(r engine.Result) string {
	if r.TotalPages <= 1 {
		return ""
	}

	prev := LabelStyle.Render("‹ Prev")
	if !r.HasPrevious() {
		prev = SubtleStyle.Render("‹ Prev")
	}
	next := LabelStyle.Render("Next ›")
	if !r.HasNext() {
		next = SubtleStyle.Render("Next ›")
	}

	tokens := engine.PageWindow(r.Page, r.TotalPages)
	parts := make([]string, 0, len(tokens)+2)
	parts = append(parts, prev)
	for _, tok := range tokens {
		switch {
		case tok.Ellipsis:
			parts = append(parts, SubtleStyle.Render("…"))
		case tok.Page == r.Page:
			parts = append(parts, ActiveStyle.Render(" "+tok.String()+" "))
		default:
			parts = append(parts, ValueStyle.Render(tok.String()))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, "  ")
}
