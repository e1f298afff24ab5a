package tui

// ViewState is the top-level state of an interactive view.
type ViewState int

const (
	// ViewStateLoading shows skeleton cards while the catalog loads.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the current result page.
	ViewStateList
	// ViewStateDetail shows one trip.
	ViewStateDetail
	// ViewStateError shows a load failure with a retry action.
	ViewStateError
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateError:
		return "error"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
