package models

import "github.com/shopspring/decimal"

// Statistics aggregates the currently loaded record set of a screen.
type Statistics struct {
	Total       int             `json:"total"`
	ByStatus    map[string]int  `json:"by_status"`
	ByType      map[string]int  `json:"by_type"`
	QuantitySum decimal.Decimal `json:"quantity_sum"`
}
