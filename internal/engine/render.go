package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/rshade/tripexplorer/internal/catalog"
)

// OutputFormat selects how results are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Star glyphs.
const (
	StarFull  = "★"
	StarHalf  = "½"
	StarEmpty = "☆"
)

const (
	tabwriterPadding  = 2
	descriptionMaxLen = 48
	truncateMinLen    = 3
)

// ParseOutputFormat validates s as an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use table, json or ndjson)", ErrUnsupportedFormat, s)
	}
}

// Stars renders a trip's rating as five star glyphs.
func Stars(t catalog.Trip) string {
	full, half, empty := t.Stars()
	return strings.Repeat(StarFull, full) + strings.Repeat(StarHalf, half) + strings.Repeat(StarEmpty, empty)
}

// FormatRating renders the rating as given, "4.75/5" or "4/5", without rounding.
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64) + "/5"
}

// ResultsDocument is the JSON envelope for one result page, shared by
// OutputJSON and the HTTP API.
type ResultsDocument struct {
	Query      QueryDocument  `json:"query"`
	Trips      []catalog.Trip `json:"trips"`
	Pagination PageInfo       `json:"pagination"`
	Pages      []PageToken    `json:"pages"`
	Summary    string         `json:"summary"`
}

// QueryDocument echoes the query a page was computed for.
type QueryDocument struct {
	Term         string `json:"term"`
	SortByRating bool   `json:"sort_by_rating"`
}

// NewResultsDocument builds the envelope for r.
func NewResultsDocument(q Query, r Result) ResultsDocument {
	pages := PageWindow(r.Page, r.TotalPages)
	if pages == nil {
		pages = []PageToken{}
	}
	return ResultsDocument{
		Query:      QueryDocument{Term: q.Term, SortByRating: q.SortByRating},
		Trips:      r.Items,
		Pagination: r.PageInfo(),
		Pages:      pages,
		Summary:    r.Summary(),
	}
}

// RenderResults writes one result page in the given format.
func RenderResults(w io.Writer, format OutputFormat, q Query, r Result) error {
	switch format {
	case OutputTable:
		return renderTable(w, q, r)
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewResultsDocument(q, r))
	case OutputNDJSON:
		enc := json.NewEncoder(w)
		for _, t := range r.Items {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func renderTable(w io.Writer, q Query, r Result) error {
	if r.NoResults() {
		_, err := fmt.Fprintln(w, NoResultsMessage(q.Term))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING\tDESCRIPTION")
	for _, t := range r.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\n",
			t.ID, t.Name, Stars(t), FormatRating(t.Rating), truncate(t.Description, descriptionMaxLen))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	footer := r.Summary()
	if r.TotalPages > 1 {
		tokens := PageWindow(r.Page, r.TotalPages)
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
			if tok.Page == r.Page {
				parts[i] = "[" + parts[i] + "]"
			}
		}
		footer += "  (page " + strings.Join(parts, " ") + ")"
	}
	_, err := fmt.Fprintf(w, "\n%s\n", footer)
	return err
}

// RenderTrip writes a plain-text detail view of one trip.
func RenderTrip(w io.Writer, t catalog.Trip) error {
	image := t.Image
	if _, ok := t.ImageURL(); !ok {
		image = "Image not available"
	}
	long := t.LongDescription
	if strings.TrimSpace(long) == "" {
		long = t.Description
	}
	_, err := fmt.Fprintf(w, "%s\n%s (%s)\n\n%s\n\nImage: %s\n",
		t.Name, Stars(t), FormatRating(t.Rating), long, image)
	return err
}

// truncate shortens s to at most maxLen runes, adding "..." when cut.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= truncateMinLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-truncateMinLen]) + "..."
}
