package listing

import "github.com/mamadbah2/stockdesk/internal/domain/models"

// Page is the visible window of a record set.
type Page struct {
	Items          []models.Record `json:"items"`
	Page           int             `json:"page"`
	PageSize       int             `json:"page_size"`
	PageCount      int             `json:"page_count"`
	Total          int             `json:"total"`
	ShowPagination bool            `json:"show_pagination"`
}

// PageSlice returns records[(page-1)*pageSize : page*pageSize]. PageCount is
// ceil(len/pageSize), zero for an empty set; page is clamped into
// [1, max(1, PageCount)].
func PageSlice(records []models.Record, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}

	total := len(records)
	pageCount := (total + pageSize - 1) / pageSize

	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := records[start:end:end]
	if items == nil {
		items = []models.Record{}
	}

	return Page{
		Items:          items,
		Page:           page,
		PageSize:       pageSize,
		PageCount:      pageCount,
		Total:          total,
		ShowPagination: pageCount > 1,
	}
}
