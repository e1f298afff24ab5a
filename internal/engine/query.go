package engine

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/tripexplorer/internal/catalog"
)

// DefaultPageSize is the number of trips per page.
const DefaultPageSize = 6

// Query is one request against the trip list.
type Query struct {
	// Term is matched case-insensitively against trip names. Empty matches all.
	Term string
	// SortByRating orders matches by rating, highest first. Ties keep input order.
	SortByRating bool
	// Page is 1-based.
	Page int
	// PageSize defaults to DefaultPageSize when not positive.
	PageSize int
}

// Result is one page of a query's derived view.
type Result struct {
	Items      []catalog.Trip
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
	// Start and End are the half-open bounds of Items within the derived view.
	Start int
	End   int
}

// Compute filters, sorts and paginates items. The input slice is not modified.
// A page outside [1, TotalPages] yields an empty Items slice.
func Compute(items []catalog.Trip, q Query) Result {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	view := Filter(items, q.Term)
	if q.SortByRating {
		SortByRating(view)
	}

	total := len(view)
	res := Result{
		Items:      []catalog.Trip{},
		TotalCount: total,
		TotalPages: TotalPages(total, pageSize),
		Page:       q.Page,
		PageSize:   pageSize,
	}

	if q.Page < 1 {
		return res
	}
	start := (q.Page - 1) * pageSize
	if start >= total {
		res.Start, res.End = total, total
		return res
	}
	end := min(start+pageSize, total)
	res.Items = view[start:end]
	res.Start, res.End = start, end
	return res
}

// Filter returns the trips whose name contains term, ignoring case, in input
// order. The result is always a fresh slice.
func Filter(items []catalog.Trip, term string) []catalog.Trip {
	needle := strings.ToLower(term)
	out := make([]catalog.Trip, 0, len(items))
	for _, t := range items {
		if needle == "" || strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, t)
		}
	}
	return out
}

// SortByRating stable-sorts trips in place by rating, highest first.
func SortByRating(trips []catalog.Trip) {
	slices.SortStableFunc(trips, func(a, b catalog.Trip) int {
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		default:
			return 0
		}
	})
}

// TotalPages returns ceil(count/pageSize), or 0 for an empty view.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// NoResults reports whether the query matched nothing.
func (r Result) NoResults() bool {
	return r.TotalCount == 0
}

// HasPrevious reports whether a previous page exists.
func (r Result) HasPrevious() bool {
	return r.Page > 1
}

// HasNext reports whether a later page exists.
func (r Result) HasNext() bool {
	return r.Page < r.TotalPages
}

//nolint:gochecknoglobals // Stateless printer shared by Summary.
var summaryPrinter = message.NewPrinter(language.English)

// Summary returns the results line, e.g. "Showing 1-6 of 13 trips".
func (r Result) Summary() string {
	noun := "trips"
	if r.TotalCount == 1 {
		noun = "trip"
	}
	if len(r.Items) == 0 {
		return summaryPrinter.Sprintf("Showing 0 of %d %s", r.TotalCount, noun)
	}
	return summaryPrinter.Sprintf("Showing %d-%d of %d %s", r.Start+1, r.End, r.TotalCount, noun)
}

// NoResultsMessage is shown when a search matches nothing.
func NoResultsMessage(term string) string {
	return `No trips found matching "` + term + `".`
}
