package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tripexplorer/internal/catalog"
)

// fakeStore serves a fixed trip list or error and counts calls.
type fakeStore struct {
	trips   []catalog.Trip
	err     error
	loads   int
	reloads int
}

func (f *fakeStore) Load(context.Context) (*catalog.Snapshot, error) {
	f.loads++
	return f.snapshot()
}

func (f *fakeStore) Reload(context.Context) (*catalog.Snapshot, error) {
	f.reloads++
	return f.snapshot()
}

func (f *fakeStore) snapshot() (*catalog.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.Snapshot{Catalog: catalog.New(&catalog.Document{Trips: f.trips})}, nil
}

func testTrips() []catalog.Trip {
	return []catalog.Trip{
		{ID: "1", Name: "Grand Canyon Rafting", Rating: 4.5, Description: "Whitewater through the canyon."},
		{ID: "2", Name: "Yellowstone Geysers", Rating: 4.8, Description: "Old Faithful and friends."},
		{ID: "3", Name: "Napa Valley Wine Tour", Rating: 4.2, Description: "Vineyards and tastings."},
		{ID: "4", Name: "Grand Teton Hike", Rating: 4.9, Description: "Alpine lakes and peaks."},
		{ID: "5", Name: "Miami Beach Weekend", Rating: 3.9, Description: "Sun and art deco."},
		{ID: "6", Name: "Alaska Glacier Cruise", Rating: 4.7, Description: "Ice, whales and fjords."},
		{ID: "7", Name: "New Orleans Jazz Nights", Rating: 4.4, Description: "Music on Frenchmen Street."},
		{ID: "8", Name: "Maui Snorkeling", Rating: 4.6, Description: "Reefs and sea turtles.", LongDescription: "## Maui\n\nTurtles **everywhere**."},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBrowser(t *testing.T, store *fakeStore) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(context.Background(), store, BrowserOptions{
		MarkdownStyle: "notty",
		Logger:        zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// loadedBrowser returns a browser that has completed its first load.
func loadedBrowser(t *testing.T) (*BrowserModel, *fakeStore) {
	t.Helper()
	store := &fakeStore{trips: testTrips()}
	m := newTestBrowser(t, store)
	m.Update(m.loadCmd(false)())
	require.Equal(t, ViewStateList, m.State())
	return m, store
}

// typeSearch focuses the search box and types s without settling.
func typeSearch(m *BrowserModel, s string) {
	if !m.search.Focused() {
		m.Update(keyRunes("/"))
	}
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func settleSearch(m *BrowserModel) {
	m.Update(searchSettledMsg{gen: m.searchGate.Generation()})
}

func resultNames(m *BrowserModel) []string {
	items := m.Result().Items
	out := make([]string, len(items))
	for i, trip := range items {
		out[i] = trip.Name
	}
	return out
}

func TestNewBrowserModel(t *testing.T) {
	m := NewBrowserModel(context.Background(), &fakeStore{}, BrowserOptions{})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, 6, m.pageSize)
	assert.Equal(t, MarkdownStyleAuto, m.markdownStyle)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading trips...")
}

func TestBrowserModel_Load(t *testing.T) {
	m, store := loadedBrowser(t)

	assert.Equal(t, 1, store.loads)
	assert.Equal(t, 8, m.Result().TotalCount)
	assert.Equal(t, 2, m.Result().TotalPages)
	assert.Len(t, m.Result().Items, 6)

	view := m.View()
	assert.Contains(t, view, "Trip Card Explorer")
	assert.Contains(t, view, "Showing 1-6 of 8 trips")
	assert.Contains(t, view, "Grand Canyon Rafting")
}

func TestBrowserModel_LoadError(t *testing.T) {
	store := &fakeStore{err: &catalog.LoadError{Source: "data.json", Err: &catalog.StatusError{Code: 500}}}
	m := newTestBrowser(t, store)

	m.Update(m.loadCmd(false)())
	require.Equal(t, ViewStateError, m.State())
	require.Error(t, m.Err())

	view := m.View()
	assert.Contains(t, view, "Something went wrong")
	assert.Contains(t, view, "Failed to load trips: HTTP error! status: 500")

	t.Run("retry reloads", func(t *testing.T) {
		store.err = nil
		store.trips = testTrips()

		_, cmd := m.Update(keyRunes("r"))
		require.NotNil(t, cmd)
		assert.Equal(t, ViewStateLoading, m.State())
		assert.NoError(t, m.Err())

		m.Update(m.loadCmd(true)())
		assert.Equal(t, ViewStateList, m.State())
		assert.Equal(t, 8, m.Result().TotalCount)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t,
		"Failed to load trips: Invalid data format: trips array not found",
		errorMessage(&catalog.LoadError{Err: errors.New("Invalid data format: trips array not found")}))
	assert.Equal(t, "Failed to load trips: boom", errorMessage(errors.New("boom")))
}

func TestBrowserModel_SearchIsDebounced(t *testing.T) {
	m, _ := loadedBrowser(t)

	typeSearch(m, "grand")
	assert.True(t, m.isSearching())
	assert.Empty(t, m.SearchTerm())
	assert.Equal(t, 8, m.Result().TotalCount, "results follow the settled term only")
	assert.Contains(t, m.View(), "Searching...")
	assert.NotContains(t, m.View(), "Showing", "results hidden while searching")

	t.Run("stale tick ignored", func(t *testing.T) {
		m.Update(searchSettledMsg{gen: m.searchGate.Generation() - 1})
		assert.Empty(t, m.SearchTerm())
	})

	settleSearch(m)
	assert.False(t, m.isSearching())
	assert.Equal(t, "grand", m.SearchTerm())
	assert.Equal(t, []string{"Grand Canyon Rafting", "Grand Teton Hike"}, resultNames(m))
	assert.Contains(t, m.View(), "Showing 1-2 of 2 trips")
}

func TestBrowserModel_PageResetsOnSearchAndSort(t *testing.T) {
	m, _ := loadedBrowser(t)

	m.Update(keyRunes("n"))
	require.Equal(t, 2, m.Page())

	typeSearch(m, "a")
	settleSearch(m)
	assert.Equal(t, 1, m.Page(), "term change resets page")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.search.Focused())
	m.SetPage(2)
	m.Update(keyRunes("s"))
	assert.Equal(t, 1, m.Page(), "sort change resets page")
}

func TestBrowserModel_Pagination(t *testing.T) {
	m, _ := loadedBrowser(t)

	m.Update(keyRunes("p"))
	assert.Equal(t, 1, m.Page(), "no page before the first")

	m.Update(keyRunes("n"))
	assert.Equal(t, 2, m.Page())
	assert.Len(t, m.Result().Items, 2)
	assert.Contains(t, m.View(), "Showing 7-8 of 8 trips")

	m.Update(keyRunes("n"))
	assert.Equal(t, 2, m.Page(), "no page after the last")

	m.SetPage(0)
	m.SetPage(3)
	assert.Equal(t, 2, m.Page())
}

func TestBrowserModel_SortTransition(t *testing.T) {
	m, _ := loadedBrowser(t)

	m.Update(keyRunes("n"))
	require.Equal(t, 2, m.Page())

	_, cmd := m.Update(keyRunes("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.SortByRating())
	assert.True(t, m.sorting)
	assert.Contains(t, m.View(), "Sorting...")
	assert.Equal(t, 1, m.Page())
	assert.Equal(t, 1, m.Result().Page, "shown page follows the reset at once")
	assert.Equal(t, "Grand Teton Hike", m.Result().Items[0].Name)

	m.Update(cmd())
	assert.False(t, m.sorting)
	assert.NotContains(t, m.View(), "Sorting...")
	assert.Equal(t, "Grand Teton Hike", m.Result().Items[0].Name)
	assert.Equal(t, "Yellowstone Geysers", m.Result().Items[1].Name)

	_, cmd = m.Update(keyRunes("s"))
	m.Update(cmd())
	assert.False(t, m.SortByRating())
	assert.Equal(t, "Grand Canyon Rafting", m.Result().Items[0].Name, "catalog order restored")
}

func TestBrowserModel_NoResults(t *testing.T) {
	m, _ := loadedBrowser(t)

	typeSearch(m, "zzz")
	settleSearch(m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Result().NoResults())
	view := m.View()
	assert.Contains(t, view, `No trips found matching "zzz".`)
	assert.Contains(t, view, "Clear search")

	m.Update(keyRunes("c"))
	assert.Empty(t, m.SearchTerm())
	assert.Empty(t, m.search.Value())
	assert.Equal(t, 8, m.Result().TotalCount)
}

func TestBrowserModel_EscClearsSearchImmediately(t *testing.T) {
	m, _ := loadedBrowser(t)

	typeSearch(m, "maui")
	settleSearch(m)
	require.Equal(t, 1, m.Result().TotalCount)

	typeSearch(m, "x")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.search.Value())
	assert.Empty(t, m.SearchTerm())
	assert.False(t, m.searchGate.Pending(), "pending term dropped")
	assert.True(t, m.search.Focused(), "first esc only clears")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.search.Focused())
}

func TestBrowserModel_Detail(t *testing.T) {
	m, _ := loadedBrowser(t)

	m.Update(keyRunes("n"))
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, ViewStateDetail, m.State())
	trip, ok := m.SelectedTrip()
	require.True(t, ok)
	assert.Equal(t, "Maui Snorkeling", trip.Name)

	view := m.View()
	assert.Contains(t, view, "Maui Snorkeling")
	assert.Contains(t, view, "Turtles")
	assert.Contains(t, view, "Image not available")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, 2, m.Page(), "closing the detail keeps the page")
}

func TestBrowserModel_BackgroundReload(t *testing.T) {
	m, store := loadedBrowser(t)
	m.Update(keyRunes("n"))

	store.trips = testTrips()[:3]
	_, cmd := m.Update(ReloadMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateList, m.State(), "reload does not show the loading screen")

	m.Update(cmd())
	assert.Equal(t, 1, store.reloads)
	assert.Equal(t, 3, m.Result().TotalCount)
	assert.Equal(t, 1, m.Page(), "page clamped to the new page count")

	t.Run("failed reload keeps the list", func(t *testing.T) {
		store.err = errors.New("file mid-write")
		_, cmd := m.Update(ReloadMsg{})
		m.Update(cmd())

		assert.Equal(t, ViewStateList, m.State())
		assert.Equal(t, 3, m.Result().TotalCount, "previous trips still shown")
		require.Error(t, m.ReloadErr())
		assert.NoError(t, m.Err())
		assert.Contains(t, m.View(), "showing previous trips")

		store.err = nil
		store.trips = testTrips()
		_, cmd = m.Update(ReloadMsg{})
		m.Update(cmd())
		assert.NoError(t, m.ReloadErr())
		assert.Equal(t, 8, m.Result().TotalCount)
		assert.NotContains(t, m.View(), "showing previous trips")
	})

	t.Run("explicit retry still reports the error", func(t *testing.T) {
		store.err = errors.New("gone")
		m.Update(m.loadCmd(true)())
		assert.Equal(t, ViewStateError, m.State())
	})
}

func TestBrowserModel_Quit(t *testing.T) {
	m, _ := loadedBrowser(t)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestBrowserModel_QuitWhileLoading(t *testing.T) {
	m := newTestBrowser(t, &fakeStore{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, ViewStateQuitting, m.State())
}

func TestBrowserModel_InitialOptions(t *testing.T) {
	store := &fakeStore{trips: testTrips()}
	m := NewBrowserModel(context.Background(), store, BrowserOptions{
		PageSize:     3,
		InitialTerm:  "grand",
		SortByRating: true,
		Logger:       zerolog.Nop(),
	})
	m.Update(m.loadCmd(false)())

	assert.Equal(t, "grand", m.SearchTerm())
	assert.False(t, m.isSearching())
	assert.Equal(t, []string{"Grand Teton Hike", "Grand Canyon Rafting"}, resultNames(m))
	assert.Equal(t, 3, m.Result().PageSize)
}
