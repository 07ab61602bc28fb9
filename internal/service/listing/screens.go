package listing

import (
	"context"
	"fmt"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
)

// Screen names.
const (
	ScreenMovements   = "movements"
	ScreenReports     = "reports"
	ScreenAdjustments = "adjustments"
)

// Report types selectable on the reports screen.
const (
	ReportInventorySummary = "inventory_summary"
	ReportLowStock         = "low_stock"
	ReportExpiry           = "expiry"
	ReportMovements        = "movements"
)

// ReportActions maps report types to the backend action that produces them.
var ReportActions = map[string]string{
	models.FilterAll:       actionapi.ActionReportsData,
	ReportInventorySummary: actionapi.ActionInventorySummaryReport,
	ReportLowStock:         actionapi.ActionLowStockReport,
	ReportExpiry:           actionapi.ActionExpiryReport,
	ReportMovements:        actionapi.ActionMovementHistoryReport,
}

// Mutations names the actions of a writable screen.
type Mutations struct {
	Entity string
	Create string
	Update string
	Delete string
}

// Screen describes how a Controller talks to the backend for one list.
type Screen struct {
	Name         string
	PageSize     int
	SearchFields []string
	// Action picks the fetch action for the current filter.
	Action func(models.FilterState) string
	// Params converts the filter into request parameters.
	Params func(models.FilterState) map[string]any
	// StatsAction, when set, is called after each successful fetch and its
	// data is exposed as server statistics.
	StatsAction string
	// StatsField, when set, names a top-level response field carrying
	// server statistics.
	StatsField string
	Mutations  *Mutations
}

// MovementHistoryScreen is the read-only movement history list.
func MovementHistoryScreen(pageSize int) Screen {
	return Screen{
		Name:         ScreenMovements,
		PageSize:     pageSize,
		SearchFields: []string{"reference", "product_name", "sku", "notes", "user_name"},
		Action:       fixedAction(actionapi.ActionMovementHistory),
		Params: func(f models.FilterState) map[string]any {
			params := map[string]any{}
			putFilter(params, "search", f.Search)
			putFilter(params, "movement_type", f.Type)
			putFilter(params, "date_range", f.DateRange)
			putFilter(params, "location_id", f.Location)
			return params
		},
	}
}

// ReportsScreen is the read-only reports list; the report type selects the action.
func ReportsScreen(pageSize int) Screen {
	return Screen{
		Name:         ScreenReports,
		PageSize:     pageSize,
		SearchFields: []string{"product_name", "sku", "category", "location_name"},
		Action: func(f models.FilterState) string {
			if action, ok := ReportActions[f.ReportType]; ok {
				return action
			}
			return actionapi.ActionReportsData
		},
		Params: func(f models.FilterState) map[string]any {
			params := map[string]any{}
			putFilter(params, "report_type", f.ReportType)
			putFilter(params, "date_range", f.DateRange)
			putFilter(params, "location_id", f.Location)
			return params
		},
		StatsField: "summary",
	}
}

// StockAdjustmentsScreen is the writable stock adjustment list.
func StockAdjustmentsScreen(pageSize int) Screen {
	return Screen{
		Name:         ScreenAdjustments,
		PageSize:     pageSize,
		SearchFields: []string{"reference", "product_name", "sku", "reason", "notes"},
		Action:       fixedAction(actionapi.ActionStockAdjustments),
		Params: func(f models.FilterState) map[string]any {
			params := map[string]any{}
			putFilter(params, "search", f.Search)
			putFilter(params, "adjustment_type", f.Type)
			putFilter(params, "status", f.Status)
			putFilter(params, "date_range", f.DateRange)
			return params
		},
		StatsAction: actionapi.ActionStockAdjustmentStats,
		Mutations: &Mutations{
			Entity: "stock_adjustment",
			Create: actionapi.ActionCreateStockAdjustment,
			Update: actionapi.ActionUpdateStockAdjustment,
			Delete: actionapi.ActionDeleteStockAdjustment,
		},
	}
}

// Locations loads the location dropdown of the movement history screen.
func Locations(ctx context.Context, client actionapi.Caller) ([]models.Location, error) {
	resp, err := client.Call(ctx, actionapi.ActionLocationsForFilter, nil)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}

	locations := []models.Location{}
	if err := resp.Decode(&locations); err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	return locations, nil
}

func fixedAction(action string) func(models.FilterState) string {
	return func(models.FilterState) string { return action }
}

// putFilter omits empty values and wildcards; the backend reads a missing
// parameter as "no restriction".
func putFilter(params map[string]any, key, value string) {
	if value == "" || value == models.FilterAll {
		return
	}
	params[key] = value
}
