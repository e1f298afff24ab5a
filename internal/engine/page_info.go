package engine

// PageInfo is the pagination metadata attached to JSON output and API
// responses.
type PageInfo struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// PageInfo returns the result's pagination metadata.
func (r Result) PageInfo() PageInfo {
	return PageInfo{
		CurrentPage: r.Page,
		PageSize:    r.PageSize,
		TotalPages:  r.TotalPages,
		TotalItems:  r.TotalCount,
		HasPrevious: r.HasPrevious(),
		HasNext:     r.HasNext(),
	}
}
