package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/service/listing"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
	"github.com/mamadbah2/stockdesk/pkg/clients/whatsapp"
)

const (
	dateLayout        = "2006-01-02"
	maxDigestLines    = 10
	lowStockKind      = listing.ReportLowStock
	defaultSheetRange = "Reports!A1"
)

var (
	// ErrExportDisabled is returned when no spreadsheet is configured.
	ErrExportDisabled = errors.New("report export is not configured")
	// ErrArchiveDisabled is returned when no snapshot archive is configured.
	ErrArchiveDisabled = errors.New("report archive is not configured")
	// ErrUnknownKind is returned for a report kind that is never captured.
	ErrUnknownKind = errors.New("unknown report kind")
	// ErrSnapshotNotFound is returned when a kind has no snapshot yet.
	ErrSnapshotNotFound = errors.New("report snapshot not found")
)

// snapshotKinds are captured by every scheduled run, in this order.
var snapshotKinds = []string{
	listing.ReportInventorySummary,
	listing.ReportLowStock,
	listing.ReportExpiry,
	listing.ReportMovements,
}

// Service captures report snapshots, exports reports and sends low-stock digests.
// Archive, export and alert collaborators are optional.
type Service struct {
	client    actionapi.Caller
	archive   mongodb.Repository
	sheet     sheets.Repository
	alerts    whatsapp.Sender
	recipient string
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures optional collaborators.
type Option func(*Service)

// WithArchive stores captured snapshots.
func WithArchive(repo mongodb.Repository) Option {
	return func(s *Service) { s.archive = repo }
}

// WithSheet enables export to a spreadsheet.
func WithSheet(repo sheets.Repository) Option {
	return func(s *Service) { s.sheet = repo }
}

// WithAlerts sends low-stock digests to recipient.
func WithAlerts(sender whatsapp.Sender, recipient string) Option {
	return func(s *Service) {
		s.alerts = sender
		s.recipient = recipient
	}
}

// NewService wires a new reporting service instance.
func NewService(client actionapi.Caller, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{client: client, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CaptureSnapshots fetches every report kind and archives each result. A
// failing kind is logged and skipped; the first error is returned after all
// kinds were attempted.
func (s *Service) CaptureSnapshots(ctx context.Context) ([]models.ReportSnapshot, error) {
	capturedAt := s.now().UTC()
	snapshots := make([]models.ReportSnapshot, 0, len(snapshotKinds))

	var firstErr error
	for _, kind := range snapshotKinds {
		action := listing.ReportActions[kind]

		resp, err := s.client.Call(ctx, action, map[string]any{"report_type": kind})
		var records []models.Record
		if err == nil {
			records, err = resp.Records()
		}
		if err != nil {
			s.logger.Error("report snapshot failed", zap.String("kind", kind), zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("capture %s: %w", kind, err)
			}
			continue
		}

		snapshot := models.ReportSnapshot{
			Kind:       kind,
			Action:     action,
			Records:    records,
			Count:      len(records),
			CapturedAt: capturedAt,
		}

		if s.archive != nil {
			if err := s.archive.SaveSnapshot(ctx, snapshot); err != nil {
				s.logger.Error("failed to archive report snapshot", zap.String("kind", kind), zap.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, firstErr
}

// LatestSnapshot returns the most recent archived snapshot of kind.
func (s *Service) LatestSnapshot(ctx context.Context, kind string) (*models.ReportSnapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	if !isSnapshotKind(kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	snapshot, err := s.archive.LatestSnapshot(ctx, kind)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, kind)
	}
	return snapshot, nil
}

func isSnapshotKind(kind string) bool {
	for _, k := range snapshotKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// RunScheduled captures snapshots and, when the low-stock report is not
// empty, sends its digest.
func (s *Service) RunScheduled(ctx context.Context) error {
	snapshots, err := s.CaptureSnapshots(ctx)

	for _, snap := range snapshots {
		if snap.Kind != lowStockKind || snap.Count == 0 {
			continue
		}
		if alertErr := s.SendLowStockAlert(ctx, snap.Records); alertErr != nil {
			s.logger.Error("failed to send low stock alert", zap.Error(alertErr))
			if err == nil {
				err = alertErr
			}
		}
	}

	return err
}

// SendLowStockAlert delivers the digest of records to the alert recipient.
// It is a no-op when alerts are not configured.
func (s *Service) SendLowStockAlert(ctx context.Context, records []models.Record) error {
	if s.alerts == nil {
		s.logger.Debug("alerts disabled, skipping low stock digest")
		return nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	id, err := s.alerts.SendText(ctxWithTimeout, s.recipient, LowStockDigest(records, s.now()))
	if err != nil {
		return fmt.Errorf("send low stock digest: %w", err)
	}
	s.logger.Info("low stock digest sent", zap.String("message_id", id), zap.Int("items", len(records)))
	return nil
}

// LowStockDigest renders the low-stock records as a short text message.
func LowStockDigest(records []models.Record, at time.Time) string {
	if len(records) == 0 {
		return fmt.Sprintf("Low stock (%s): all items above minimum.", at.Format(dateLayout))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Low stock (%s): %d items below minimum.", at.Format(dateLayout), len(records))

	for i, r := range records {
		if i == maxDigestLines {
			fmt.Fprintf(&b, "\n... and %d more.", len(records)-maxDigestLines)
			break
		}

		name := r.Text("product_name")
		if name == "" {
			name = r.Text("sku")
		}
		line := fmt.Sprintf("\n- %s: %s", name, quantityText(r, "quantity", "current_stock"))
		if minimum := quantityText(r, "min_stock", "reorder_level"); minimum != "?" {
			line += fmt.Sprintf(" (min %s)", minimum)
		}
		b.WriteString(line)
	}

	return b.String()
}

// ExportRecords writes records to the spreadsheet: a header row with the
// sorted union of field names, then one row per record. It returns the
// number of data rows written.
func (s *Service) ExportRecords(ctx context.Context, sheetRange string, records []models.Record) (int, error) {
	if s.sheet == nil {
		return 0, ErrExportDisabled
	}
	if sheetRange == "" {
		sheetRange = defaultSheetRange
	}

	if err := s.sheet.ClearRange(ctx, sheetRange); err != nil {
		return 0, err
	}
	if err := s.sheet.WriteRows(ctx, sheetRange, Rows(records)); err != nil {
		return 0, err
	}

	s.logger.Info("report exported", zap.String("range", sheetRange), zap.Int("rows", len(records)))
	return len(records), nil
}

// Rows converts records to spreadsheet rows with a leading header row.
func Rows(records []models.Record) [][]interface{} {
	seen := map[string]struct{}{}
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}

	rows := make([][]interface{}, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			row[i] = r.Text(c)
		}
		rows = append(rows, row)
	}
	return rows
}

func quantityText(r models.Record, fields ...string) string {
	for _, f := range fields {
		if v, err := r.Float(f); err == nil {
			return fmt.Sprintf("%g", v)
		}
	}
	return "?"
}
