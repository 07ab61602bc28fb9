package models

// Adjustment types accepted by the backend.
const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"
)

// Adjustment is the stock adjustment form submitted for create and update.
type Adjustment struct {
	ID             string  `json:"id,omitempty"`
	ProductID      string  `json:"product_id" validate:"required"`
	LocationID     string  `json:"location_id" validate:"required"`
	AdjustmentType string  `json:"adjustment_type" validate:"required,oneof=increase decrease"`
	Quantity       float64 `json:"quantity" validate:"gt=0"`
	Reason         string  `json:"reason" validate:"required"`
	Notes          string  `json:"notes,omitempty"`
	Status         string  `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}

// Params converts the form into action parameters.
func (a Adjustment) Params() map[string]any {
	params := map[string]any{
		"product_id":      a.ProductID,
		"location_id":     a.LocationID,
		"adjustment_type": a.AdjustmentType,
		"quantity":        a.Quantity,
		"reason":          a.Reason,
		"notes":           a.Notes,
	}
	if a.ID != "" {
		params["id"] = a.ID
	}
	if a.Status != "" {
		params["status"] = a.Status
	}
	return params
}
