package models

// FilterAll is the wildcard value for enumerated filters.
const FilterAll = "all"

// DefaultPageSize is used when a screen does not configure its own.
const DefaultPageSize = 10

// FilterState is the user-edited filter of a list screen.
type FilterState struct {
	Search     string `json:"search"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	DateRange  string `json:"date_range"`
	Location   string `json:"location"`
	ReportType string `json:"report_type"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// NewFilterState returns the initial filter: wildcards everywhere, first page.
func NewFilterState(pageSize int) FilterState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return FilterState{
		Type:       FilterAll,
		Status:     FilterAll,
		DateRange:  FilterAll,
		Location:   FilterAll,
		ReportType: FilterAll,
		Page:       1,
		PageSize:   pageSize,
	}
}

// FilterPatch carries a partial filter update. Nil fields are left untouched.
type FilterPatch struct {
	Search     *string `json:"search,omitempty"`
	Type       *string `json:"type,omitempty"`
	Status     *string `json:"status,omitempty"`
	DateRange  *string `json:"date_range,omitempty"`
	Location   *string `json:"location,omitempty"`
	ReportType *string `json:"report_type,omitempty"`
	Page       *int    `json:"page,omitempty"`
}

// Merge applies the patch to the filter. It reports whether any field other
// than the page changed and whether the page changed.
func (f FilterState) Merge(p FilterPatch) (next FilterState, filterChanged, pageChanged bool) {
	next = f

	apply := func(dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			filterChanged = true
		}
	}
	apply(&next.Search, p.Search)
	apply(&next.Type, p.Type)
	apply(&next.Status, p.Status)
	apply(&next.DateRange, p.DateRange)
	apply(&next.Location, p.Location)
	apply(&next.ReportType, p.ReportType)

	if filterChanged {
		next.Page = 1
		return next, true, next.Page != f.Page
	}

	if p.Page != nil && *p.Page != f.Page {
		page := *p.Page
		if page < 1 {
			page = 1
		}
		if page != f.Page {
			next.Page = page
			pageChanged = true
		}
	}

	return next, false, pageChanged
}
