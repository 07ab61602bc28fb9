package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockdesk/internal/config"
)

// Repository defines the spreadsheet operations used by report export.
type Repository interface {
	ClearRange(ctx context.Context, sheetRange string) error
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ClearRange empties the values of a range before a fresh export.
func (r *GoogleSheetRepository) ClearRange(ctx context.Context, sheetRange string) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	call := r.service.Spreadsheets.Values.Clear(r.spreadsheetID, sheetRange, &sheetsapi.ClearValuesRequest{}).Context(ctx)
	if _, err := call.Do(); err != nil {
		return fmt.Errorf("clear range %s: %w", sheetRange, err)
	}
	return nil
}

// WriteRows overwrites the range starting at its top-left cell with rows.
func (r *GoogleSheetRepository) WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := r.service.Spreadsheets.Values.Update(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("write rows into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("rows written to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}
