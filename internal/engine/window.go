package engine

import "strconv"

// maxPlainPages is the page count up to which every page is listed.
const maxPlainPages = 5

// PageToken is one entry in the pagination control: a page number or an
// ellipsis standing in for a collapsed run of pages.
type PageToken struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (t PageToken) String() string {
	if t.Ellipsis {
		return "..."
	}
	return strconv.Itoa(t.Page)
}

// PageWindow returns the compact page sequence for current of total pages.
// The first and last pages are always present, up to three pages centred on
// current are shown, and gaps are collapsed into a single ellipsis.
func PageWindow(current, total int) []PageToken {
	if total <= 0 {
		return nil
	}

	if total <= maxPlainPages {
		tokens := make([]PageToken, 0, total)
		for p := 1; p <= total; p++ {
			tokens = append(tokens, PageToken{Page: p})
		}
		return tokens
	}

	tokens := []PageToken{{Page: 1}}
	if current > 3 {
		tokens = append(tokens, PageToken{Ellipsis: true})
	}
	for p := max(2, current-1); p <= min(total-1, current+1); p++ {
		tokens = append(tokens, PageToken{Page: p})
	}
	if current < total-2 {
		tokens = append(tokens, PageToken{Ellipsis: true})
	}
	return append(tokens, PageToken{Page: total})
}
