package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/engine"
)

func TestRenderTripCard(t *testing.T) {
	trip := catalog.Trip{
		ID:          "1",
		Name:        "Grand Canyon Rafting",
		Description: "Seven days of whitewater through the deepest canyon in the country with expert guides.",
		Image:       "https://images.example.com/canyon.jpg",
		Rating:      4.5,
	}

	card := RenderTripCard(trip, false, defaultCardWidth)
	assert.Contains(t, card, "Grand Canyon Rafting")
	assert.Contains(t, card, "★★★★½")
	assert.Contains(t, card, "4.5/5")
	assert.Contains(t, card, "images.example.com")
	assert.Equal(t, cardHeight, lipgloss.Height(card))

	t.Run("missing image", func(t *testing.T) {
		trip.Image = ""
		assert.Contains(t, RenderTripCard(trip, true, defaultCardWidth), "Image not available")
	})

	t.Run("uniform height", func(t *testing.T) {
		short := catalog.Trip{Name: "x", Rating: 1}
		assert.Equal(t, cardHeight, lipgloss.Height(RenderTripCard(short, false, defaultCardWidth)))
	})
}

func TestRenderSkeletonCard(t *testing.T) {
	card := RenderSkeletonCard(defaultCardWidth)
	assert.Contains(t, card, skeletonChar)
	assert.Equal(t, cardHeight, lipgloss.Height(card))
}

func TestRenderLoading(t *testing.T) {
	out := RenderLoading(NewLoadingState(), 6, 3, defaultCardWidth)
	assert.Contains(t, out, "Loading trips...")
	assert.Equal(t, 6, strings.Count(out, "╭"), "one skeleton per page slot")
}

func TestGridLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantColumns   int
		wantRows      int
		wantCardWidth int
	}{
		{name: "wide", width: 120, height: 40, wantColumns: 3, wantRows: 4, wantCardWidth: defaultCardWidth},
		{name: "narrow", width: 40, height: 40, wantColumns: 1, wantRows: 4, wantCardWidth: 39},
		{name: "tiny", width: 10, height: 5, wantColumns: 1, wantRows: 1, wantCardWidth: minCardWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, rows, cardWidth := gridLayout(tt.width, tt.height, browserChrome)
			assert.Equal(t, tt.wantColumns, columns)
			assert.Equal(t, tt.wantRows, rows)
			assert.Equal(t, tt.wantCardWidth, cardWidth)
		})
	}
}

func TestWrapLines(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrapLines("one two three", 8, 2))
	assert.Equal(t, "short\n", wrapLines("short", 20, 2), "padded to maxLines")

	out := wrapLines("aaaa bbbb cccc dddd eeee", 9, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "…"))
}

func TestRenderPagination(t *testing.T) {
	t.Run("single page hidden", func(t *testing.T) {
		assert.Empty(t, RenderPagination(engine.Result{Page: 1, TotalPages: 1}))
		assert.Empty(t, RenderPagination(engine.Result{Page: 1, TotalPages: 0}))
	})

	t.Run("window with ellipses", func(t *testing.T) {
		out := RenderPagination(engine.Result{Page: 5, TotalPages: 10})
		assert.Contains(t, out, "‹ Prev")
		assert.Contains(t, out, "Next ›")
		assert.Equal(t, 2, strings.Count(out, "…"))
		for _, p := range []string{"1", " 5 ", "4", "6", "10"} {
			assert.Contains(t, out, p)
		}
		assert.NotContains(t, out, "3")
	})

	t.Run("first page", func(t *testing.T) {
		out := RenderPagination(engine.Result{Page: 1, TotalPages: 3})
		assert.Contains(t, out, " 1 ")
		assert.Contains(t, out, "2")
		assert.Contains(t, out, "3")
		assert.NotContains(t, out, "…")
	})
}

func TestRenderTripDetail(t *testing.T) {
	trip := catalog.Trip{
		Name:            "Maui Snorkeling",
		Description:     "Reefs and sea turtles.",
		LongDescription: "## Day one\n\nMolokini crater at sunrise.",
		Rating:          4,
	}

	out := RenderTripDetail(trip, 80, "notty")
	assert.Contains(t, out, "Maui Snorkeling")
	assert.Contains(t, out, "★★★★☆")
	assert.Contains(t, out, "(4/5)")
	assert.Contains(t, out, "Molokini crater at sunrise.")
	assert.Contains(t, out, "Image not available")

	t.Run("falls back to short description", func(t *testing.T) {
		trip.LongDescription = "  "
		assert.Contains(t, RenderTripDetail(trip, 80, "notty"), "Reefs and sea turtles.")
	})
}

func TestRenderMarkdown_UnknownStyleFallsBack(t *testing.T) {
	assert.Equal(t, "plain *text*", RenderMarkdown("plain *text*", "no-such-style", 80))
}

func TestViewState_String(t *testing.T) {
	assert.Equal(t, "loading", ViewStateLoading.String())
	assert.Equal(t, "detail", ViewStateDetail.String())
	assert.Equal(t, "unknown", ViewState(99).String())
}
