package listing

import (
	"strings"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// ApplyLocalFilter narrows a fetched record set the way the screens do before
// paginating: case-insensitive search over searchFields, then exact type and
// status matches unless the filter holds the wildcard.
func ApplyLocalFilter(records []models.Record, f models.FilterState, searchFields []string) []models.Record {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	matchType := f.Type != "" && f.Type != models.FilterAll
	matchStatus := f.Status != "" && f.Status != models.FilterAll

	if needle == "" && !matchType && !matchStatus {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if matchType && !strings.EqualFold(recordType(r), f.Type) {
			continue
		}
		if matchStatus && !strings.EqualFold(r.Text("status"), f.Status) {
			continue
		}
		if needle != "" && !containsAny(r, searchFields, needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func containsAny(r models.Record, fields []string, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(r.Text(field)), needle) {
			return true
		}
	}
	return false
}
