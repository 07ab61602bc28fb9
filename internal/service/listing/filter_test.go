package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

func TestApplyLocalFilter(t *testing.T) {
	recs := []models.Record{
		{"id": 1.0, "reference": "ADJ-001", "product_name": "Widget", "status": "approved", "adjustment_type": "increase"},
		{"id": 2.0, "reference": "ADJ-002", "product_name": "Gadget", "status": "pending", "adjustment_type": "decrease"},
		{"id": 3.0, "reference": "ADJ-003", "product_name": "widget pro", "status": "pending", "adjustment_type": "increase"},
	}
	fields := []string{"reference", "product_name"}

	f := models.NewFilterState(10)
	assert.Len(t, ApplyLocalFilter(recs, f, fields), 3)

	f.Search = "WIDGET"
	got := ApplyLocalFilter(recs, f, fields)
	assert.Len(t, got, 2)

	f.Status = "pending"
	got = ApplyLocalFilter(recs, f, fields)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 3.0, got[0]["id"])
	}

	f = models.NewFilterState(10)
	f.Type = "decrease"
	got = ApplyLocalFilter(recs, f, fields)
	if assert.Len(t, got, 1) {
		assert.Equal(t, 2.0, got[0]["id"])
	}
}

func TestMergeResetsPage(t *testing.T) {
	search := "bolt"
	page := 4
	sameType := models.FilterAll

	base := models.NewFilterState(10)
	base.Page = 3

	next, filterChanged, _ := base.Merge(models.FilterPatch{Search: &search, Page: &page})
	assert.True(t, filterChanged)
	assert.Equal(t, 1, next.Page)
	assert.Equal(t, "bolt", next.Search)

	next, filterChanged, pageChanged := base.Merge(models.FilterPatch{Page: &page})
	assert.False(t, filterChanged)
	assert.True(t, pageChanged)
	assert.Equal(t, 4, next.Page)

	next, filterChanged, pageChanged = base.Merge(models.FilterPatch{Type: &sameType})
	assert.False(t, filterChanged)
	assert.False(t, pageChanged)
	assert.Equal(t, 3, next.Page)
}
