package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/tripexplorer/internal/engine"
)

// Validation limits and sort names.
const (
	DefaultPage     = 1
	MinPage         = 1
	MinPageSize     = 1
	MaxPageSize     = 100
	SortFieldRating = "rating"
	SortFieldNone   = "none"
	SortOrderAsc    = "asc"
	SortOrderDesc   = "desc"
)

// Query string parameter names.
const (
	ParamSearch   = "q"
	ParamPage     = "page"
	ParamPageSize = "page_size"
	ParamSort     = "sort"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'rating:desc')")
	ErrInvalidSortField  = errors.New("invalid sort field: use 'rating' or 'none'")
	ErrInvalidSortOrder  = errors.New("rating sort is highest first: order must be 'desc'")
)

// Params holds paging and sort options for one listing.
type Params struct {
	// Term filters trips by name.
	Term string

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of trips per page.
	PageSize int

	// Sort is "", "none", "rating" or "rating:desc".
	Sort string
}

// NewParams returns Params with the first page and the given page size.
func NewParams(pageSize int) *Params {
	return &Params{
		Page:     DefaultPage,
		PageSize: pageSize,
	}
}

// RegisterFlags binds --page, --page-size and --sort to p.
func RegisterFlags(cmd *cobra.Command, p *Params) {
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "Page number to show (1-based)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize,
		fmt.Sprintf("Trips per page (%d-%d)", MinPageSize, MaxPageSize))
	cmd.Flags().StringVar(&p.Sort, "sort", p.Sort, "Sort order: 'rating' (highest first) or 'none' (catalog order)")
}

// Validate checks page bounds and the sort expression.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	}
	_, err := ParseSort(p.Sort)
	return err
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses "field" or "field:order" and reports whether rating order
// is requested. Only "rating" (descending) and "none" are supported.
func ParseSort(sortStr string) (bool, error) {
	sortStr = strings.TrimSpace(sortStr)
	if sortStr == "" {
		return false, nil
	}

	parts := strings.Split(sortStr, ":")
	if len(parts) > sortPartsMax {
		return false, fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	field := strings.ToLower(strings.TrimSpace(parts[0]))
	order := SortOrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	switch field {
	case SortFieldNone:
		return false, nil
	case SortFieldRating:
		if order != SortOrderDesc {
			return false, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
		}
		return true, nil
	default:
		return false, fmt.Errorf("%w: got %q", ErrInvalidSortField, field)
	}
}

// ToQuery converts validated params to an engine query.
func (p Params) ToQuery() (engine.Query, error) {
	if err := p.Validate(); err != nil {
		return engine.Query{}, err
	}
	byRating, _ := ParseSort(p.Sort)
	return engine.Query{
		Term:         p.Term,
		SortByRating: byRating,
		Page:         p.Page,
		PageSize:     p.PageSize,
	}, nil
}

// FromValues reads params from a query string. Missing values keep the
// defaults in base.
func FromValues(values url.Values, base Params) (Params, error) {
	p := base
	p.Term = values.Get(ParamSearch)
	if v := values.Get(ParamSort); v != "" {
		p.Sort = v
	}

	var err error
	if p.Page, err = intValue(values, ParamPage, p.Page); err != nil {
		return Params{}, err
	}
	if p.PageSize, err = intValue(values, ParamPageSize, p.PageSize); err != nil {
		return Params{}, err
	}
	return p, p.Validate()
}

func intValue(values url.Values, name string, fallback int) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, raw)
	}
	return n, nil
}
