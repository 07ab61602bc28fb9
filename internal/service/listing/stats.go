package listing

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
)

// UnknownBucket collects records without a status or type.
const UnknownBucket = "unknown"

// DerivedStats aggregates a record set: counts per status and type and the sum
// of absolute quantities. Records without a parseable quantity add nothing to
// the sum.
func DerivedStats(records []models.Record) models.Statistics {
	stats := models.Statistics{
		Total:       len(records),
		ByStatus:    map[string]int{},
		ByType:      map[string]int{},
		QuantitySum: decimal.Zero,
	}

	for _, r := range records {
		stats.ByStatus[bucket(r.Text("status"))]++
		stats.ByType[bucket(recordType(r))]++

		if qty, err := r.Float("quantity"); err == nil {
			stats.QuantitySum = stats.QuantitySum.Add(decimal.NewFromFloat(qty).Abs())
		}
	}

	return stats
}

// recordType reads the type enumeration; movements and adjustments name it
// differently.
func recordType(r models.Record) string {
	for _, field := range []string{"type", "movement_type", "adjustment_type"} {
		if v := r.Text(field); v != "" {
			return v
		}
	}
	return ""
}

func bucket(v string) string {
	if v == "" {
		return UnknownBucket
	}
	return v
}
