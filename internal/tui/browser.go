package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/debounce"
	"github.com/rshade/tripexplorer/internal/engine"
	listview "github.com/rshade/tripexplorer/internal/tui/list"
)

const (
	// DefaultDebounce is how long the search term must stay unchanged
	// before the result list follows it.
	DefaultDebounce = 300 * time.Millisecond

	// browserChrome is the number of lines used by everything but the grid:
	// title, subtitle, search, status, summary, pagination, help and spacing.
	browserChrome = 11

	// detailChrome is the number of lines around the detail viewport.
	detailChrome = 4

	appTitle    = "Trip Card Explorer"
	appSubtitle = "Discover amazing destinations around the United States"
)

// CatalogStore loads the trip catalog. *catalog.Store satisfies it.
type CatalogStore interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}

// BrowserOptions configures a BrowserModel.
type BrowserOptions struct {
	// PageSize is the number of trips per page. Zero means engine.DefaultPageSize.
	PageSize int
	// Debounce is the search settle delay. Zero or negative settles on the
	// next message.
	Debounce time.Duration
	// MarkdownStyle is a glamour style name for the detail view.
	MarkdownStyle string
	// InitialTerm pre-fills the search box.
	InitialTerm string
	// SortByRating starts with rating order enabled.
	SortByRating bool
	Logger       zerolog.Logger
}

// Messages for BrowserModel.
type (
	catalogLoadedMsg struct {
		catalog *catalog.Catalog
		err     error
		// background marks a reload the user did not ask for; its failure
		// keeps the trips already shown.
		background bool
	}

	// searchSettledMsg is delivered after the debounce delay; only the
	// latest generation is applied.
	searchSettledMsg struct{ gen uint64 }

	// sortAppliedMsg ends the sort transition started by the sort key.
	sortAppliedMsg struct{}
)

// ReloadMsg asks the browser to reload the catalog in the background, for
// example after the source file changed on disk.
type ReloadMsg struct{}

// BrowserModel is the Bubble Tea model for the interactive trip browser.
type BrowserModel struct {
	ctx    context.Context
	store  CatalogStore
	logger zerolog.Logger

	// View state
	state ViewState
	trips     []catalog.Trip // Source of truth
	err       error
	reloadErr error // last failed background reload

	// Search: the input holds the raw term, debouncedTerm the applied one.
	search        textinput.Model
	searchGate    debounce.Gate[string]
	debounceDelay time.Duration
	debouncedTerm string

	// Derived view
	sortByRating bool
	sorting      bool
	page         int
	pageSize     int
	result       engine.Result

	// Interactive components
	grid          *listview.GridModel[catalog.Trip]
	detail        viewport.Model
	detailTrip    catalog.Trip
	markdownStyle string
	loading       *LoadingState
	keys          keyMap
	help          help.Model

	// Display configuration
	width     int
	height    int
	cardWidth int
}

// NewBrowserModel creates a browser that starts in the loading state and
// loads the catalog from store on Init.
func NewBrowserModel(ctx context.Context, store CatalogStore, opts BrowserOptions) *BrowserModel {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = engine.DefaultPageSize
	}
	style := opts.MarkdownStyle
	if style == "" {
		style = MarkdownStyleAuto
	}

	m := &BrowserModel{
		ctx:           ctx,
		store:         store,
		logger:        opts.Logger,
		state:         ViewStateLoading,
		search:        newSearchInput(),
		debounceDelay: opts.Debounce,
		debouncedTerm: opts.InitialTerm,
		sortByRating:  opts.SortByRating,
		page:          1,
		pageSize:      pageSize,
		markdownStyle: style,
		loading:       NewLoadingState(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		width:         defaultWidth,
		height:        defaultHeight,
	}
	m.search.SetValue(opts.InitialTerm)
	m.grid = listview.NewGridModel(nil, 1, 1, m.renderCard)
	m.relayout()
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search trips by name..."
	ti.Prompt = "🔍 "
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// Init starts the spinner and the first catalog load.
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.loadCmd(false))
}

// loadCmd loads the catalog off the event loop. A reload bypasses the cache.
func (m *BrowserModel) loadCmd(reload bool) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		load := store.Load
		if reload {
			load = store.Reload
		}
		snap, err := load(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		return catalogLoadedMsg{catalog: snap.Catalog}
	}
}

// backgroundReloadCmd is loadCmd(true) for reloads the user did not ask for.
func (m *BrowserModel) backgroundReloadCmd() tea.Cmd {
	load := m.loadCmd(true)
	return func() tea.Msg {
		msg, _ := load().(catalogLoadedMsg)
		msg.background = true
		return msg
	}
}

// Update handles messages and updates the model state.
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case ReloadMsg:
		m.logger.Debug().Str("component", "tui").Msg("background catalog reload requested")
		return m, m.backgroundReloadCmd()
	case searchSettledMsg:
		m.handleSearchSettled(msg)
		return m, nil
	case sortAppliedMsg:
		m.sorting = false
		return m, nil
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		if m.search.Focused() {
			return m.handleSearchInput(msg)
		}
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateError:
		return m.handleErrorUpdate(msg)
	case ViewStateQuitting:
		return m, nil
	default:
		return m, nil
	}
}

func (m *BrowserModel) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil && msg.background {
		m.reloadErr = msg.err
		m.logger.Warn().Err(msg.err).Str("component", "tui").Msg("catalog reload failed, keeping previous trips")
		return m, nil
	}
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		m.logger.Error().Err(msg.err).Str("component", "tui").Msg("catalog load failed")
		return m, nil
	}

	m.err = nil
	m.reloadErr = nil
	m.trips = msg.catalog.Trips()
	for _, w := range msg.catalog.Warnings() {
		m.logger.Warn().Str("component", "tui").Msg(w)
	}
	if m.state != ViewStateDetail {
		m.state = ViewStateList
	}
	m.recompute()
	if m.result.TotalPages > 0 && m.page > m.result.TotalPages {
		m.page = 1
		m.recompute()
	}
	m.logger.Debug().
		Str("component", "tui").
		Int("trips", len(m.trips)).
		Msg("catalog loaded")
	return m, nil
}

func (m *BrowserModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, m.loading.Update(msg)
}

func (m *BrowserModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case tea.KeyEsc:
			if m.search.Value() == "" {
				m.search.Blur()
			} else {
				m.clearSearch()
			}
			return m, nil
		case tea.KeyEnter, tea.KeyTab, tea.KeyDown:
			m.search.Blur()
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		return m, tea.Batch(cmd, m.armSearch())
	}
	return m, cmd
}

// armSearch schedules the debounced term. Earlier pending ticks go stale.
func (m *BrowserModel) armSearch() tea.Cmd {
	gen := m.searchGate.Arm(m.search.Value())
	if m.debounceDelay <= 0 {
		return func() tea.Msg { return searchSettledMsg{gen: gen} }
	}
	return tea.Tick(m.debounceDelay, func(time.Time) tea.Msg {
		return searchSettledMsg{gen: gen}
	})
}

func (m *BrowserModel) handleSearchSettled(msg searchSettledMsg) {
	term, ok := m.searchGate.Fire(msg.gen)
	if !ok {
		return
	}
	m.applyTerm(term)
}

func (m *BrowserModel) applyTerm(term string) {
	if term == m.debouncedTerm {
		return
	}
	m.logger.Debug().Str("component", "tui").Str("term", term).Msg("search applied")
	m.debouncedTerm = term
	m.page = 1
	m.recompute()
}

// clearSearch empties the search box and applies the empty term at once.
func (m *BrowserModel) clearSearch() {
	m.search.SetValue("")
	m.searchGate.Cancel()
	m.applyTerm("")
}

func (m *BrowserModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Search):
		return m, m.search.Focus()
	case key.Matches(keyMsg, m.keys.ClearSearch), key.Matches(keyMsg, m.keys.Back):
		if m.search.Value() != "" || m.debouncedTerm != "" {
			m.clearSearch()
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Sort):
		return m, m.toggleSort()
	case key.Matches(keyMsg, m.keys.PrevPage):
		m.SetPage(m.page - 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.NextPage):
		m.SetPage(m.page + 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.Details):
		if !m.isSearching() {
			if trip, found := m.grid.SelectedItem(); found {
				m.openDetail(trip)
			}
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Retry):
		return m, m.loadCmd(true)
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil
	}

	_, cmd := m.grid.Update(msg)
	return m, cmd
}

// toggleSort flips rating order, returns to the first page and starts the
// sort transition, which ends when sortAppliedMsg arrives.
func (m *BrowserModel) toggleSort() tea.Cmd {
	m.sortByRating = !m.sortByRating
	m.sorting = true
	m.page = 1
	m.recompute()
	m.grid.SetSelected(0)
	m.logger.Debug().Str("component", "tui").Bool("sort_by_rating", m.sortByRating).Msg("sort toggled")
	return func() tea.Msg { return sortAppliedMsg{} }
}

func (m *BrowserModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Quit):
			m.state = ViewStateQuitting
			return m, tea.Quit
		case key.Matches(keyMsg, m.keys.Back):
			m.state = ViewStateList
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *BrowserModel) handleErrorUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Retry), key.Matches(keyMsg, m.keys.Details):
		m.state = ViewStateLoading
		m.err = nil
		m.loading = NewLoadingState()
		return m, tea.Batch(m.loading.Init(), m.loadCmd(true))
	}
	return m, nil
}

func (m *BrowserModel) openDetail(trip catalog.Trip) {
	m.detailTrip = trip
	m.detail = viewport.New(m.width, max(minHeight, m.height-detailChrome))
	m.detail.SetContent(RenderTripDetail(trip, m.width, m.markdownStyle))
	m.state = ViewStateDetail
}

// SetPage moves to page p. Pages outside [1, TotalPages] are ignored.
func (m *BrowserModel) SetPage(p int) {
	if p < 1 || p > m.result.TotalPages || p == m.page {
		return
	}
	m.page = p
	m.recompute()
	m.grid.SetSelected(0)
}

func (m *BrowserModel) recompute() {
	m.result = engine.Compute(m.trips, engine.Query{
		Term:         m.debouncedTerm,
		SortByRating: m.sortByRating,
		Page:         m.page,
		PageSize:     m.pageSize,
	})
	m.grid.SetItems(m.result.Items)
}

func (m *BrowserModel) relayout() {
	chrome := browserChrome
	if m.help.ShowAll {
		chrome += len(m.keys.FullHelp())
	}
	columns, rows, cardWidth := gridLayout(m.width, max(minHeight, m.height), chrome)
	m.cardWidth = cardWidth
	m.grid.SetLayout(columns, rows)
	m.help.Width = m.width
	if m.state == ViewStateDetail {
		m.openDetail(m.detailTrip)
	}
}

func (m *BrowserModel) renderCard(t catalog.Trip, selected bool) string {
	return RenderTripCard(t, selected, m.cardWidth)
}

// isSearching reports whether the typed term has not been applied yet.
func (m *BrowserModel) isSearching() bool {
	return m.search.Value() != m.debouncedTerm
}

// State returns the current view state.
func (m *BrowserModel) State() ViewState { return m.state }

// Result returns the page currently shown.
func (m *BrowserModel) Result() engine.Result { return m.result }

// Page returns the current 1-based page.
func (m *BrowserModel) Page() int { return m.page }

// SearchTerm returns the applied (debounced) search term.
func (m *BrowserModel) SearchTerm() string { return m.debouncedTerm }

// SortByRating reports whether rating order is enabled.
func (m *BrowserModel) SortByRating() bool { return m.sortByRating }

// Err returns the last load error.
func (m *BrowserModel) Err() error { return m.err }

// ReloadErr returns the last failed background reload, cleared by the next
// successful load.
func (m *BrowserModel) ReloadErr() error { return m.reloadErr }

// SelectedTrip returns the trip shown in the detail view.
func (m *BrowserModel) SelectedTrip() (catalog.Trip, bool) {
	return m.detailTrip, m.state == ViewStateDetail
}

// View renders the current view.
func (m *BrowserModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateError:
		return m.renderErrorView()
	}

	sections := []string{m.renderHeader()}
	if m.state == ViewStateLoading {
		sections = append(sections, RenderLoading(m.loading, m.pageSize, m.grid.Columns(), m.cardWidth))
	} else {
		sections = append(sections, m.renderControls(), m.renderResults())
	}
	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BrowserModel) renderHeader() string {
	return HeaderStyle.Render(appTitle) + "\n" + SubtleStyle.Render(appSubtitle) + "\n"
}

func (m *BrowserModel) renderControls() string {
	sortLabel := "[ ] Sort by rating"
	if m.sortByRating {
		sortLabel = "[x] Sort by rating"
	}
	line := m.search.View() + "   " + LabelStyle.Render(sortLabel)

	var status string
	switch {
	case m.isSearching():
		status = InfoStyle.Render("Searching...")
	case m.sorting:
		status = InfoStyle.Render("Sorting...")
	case m.reloadErr != nil:
		status = CriticalStyle.Render(errorMessage(m.reloadErr) + " (showing previous trips)")
	}
	return line + "\n" + status
}

func (m *BrowserModel) renderResults() string {
	if m.isSearching() {
		return ""
	}

	if m.result.NoResults() {
		msg := "No trips available."
		if m.debouncedTerm != "" {
			msg = engine.NoResultsMessage(m.debouncedTerm)
		}
		return "\n" + ValueStyle.Render(msg) + "\n" + LabelStyle.Render("[c] Clear search")
	}

	parts := []string{SubtleStyle.Render(m.result.Summary()), m.grid.View()}
	if pager := RenderPagination(m.result); pager != "" {
		parts = append(parts, pager)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *BrowserModel) renderDetailView() string {
	footer := SubtleStyle.Render("esc close • ↑/↓ scroll • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.detail.View(), "", footer)
}

func (m *BrowserModel) renderErrorView() string {
	msg := "Failed to load trips"
	if m.err != nil {
		msg = errorMessage(m.err)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		CriticalStyle.Render("Something went wrong"),
		"",
		ValueStyle.Render(msg),
		"",
		LabelStyle.Render("[r] Try again   [q] Quit"),
	)
	return ErrorBoxStyle.Width(min(m.width, defaultWidth) - borderPadding).Render(body)
}

// errorMessage renders a load error in the user-facing "Failed to load
// trips: ..." form.
func errorMessage(err error) string {
	var le *catalog.LoadError
	if errors.As(err, &le) {
		return "Failed to load trips: " + le.Err.Error()
	}
	return "Failed to load trips: " + err.Error()
}
