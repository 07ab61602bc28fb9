package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

func TestDerivedStats(t *testing.T) {
	recs := []models.Record{
		{"status": "approved", "adjustment_type": "increase", "quantity": 5.5},
		{"status": "pending", "adjustment_type": "decrease", "quantity": -3.0},
		{"status": "approved", "adjustment_type": "decrease", "quantity": "2"},
		{"adjustment_type": "increase"},
	}

	stats := DerivedStats(recs)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[string]int{"approved": 2, "pending": 1, UnknownBucket: 1}, stats.ByStatus)
	assert.Equal(t, map[string]int{"increase": 2, "decrease": 2}, stats.ByType)
	assert.Equal(t, "10.5", stats.QuantitySum.String())
}

func TestDerivedStatsStatusCountsSumToTotal(t *testing.T) {
	recs := []models.Record{
		{"status": "in"}, {"status": "out"}, {}, {"status": ""}, {"status": "in"}, {"status": nil},
	}

	stats := DerivedStats(recs)

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
}

func TestDerivedStatsEmpty(t *testing.T) {
	stats := DerivedStats(nil)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByStatus)
	assert.True(t, stats.QuantitySum.IsZero())
}
