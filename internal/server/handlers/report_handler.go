package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/listing"
	"github.com/mamadbah2/stockdesk/internal/service/reporting"
)

// ReportService exports report records and serves archived snapshots.
type ReportService interface {
	ExportRecords(ctx context.Context, sheetRange string, records []models.Record) (int, error)
	LatestSnapshot(ctx context.Context, kind string) (*models.ReportSnapshot, error)
}

// ReportHandler serves report export and snapshots.
type ReportHandler struct {
	ctrl       *listing.Controller
	reports    ReportService
	sheetRange string
	logger     *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(ctrl *listing.Controller, reports ReportService, sheetRange string, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{ctrl: ctrl, reports: reports, sheetRange: sheetRange, logger: logger}
}

type exportRequest struct {
	Range string `json:"range"`
}

// Export writes the filtered reports record set to the spreadsheet.
func (h *ReportHandler) Export(c *gin.Context) {
	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if req.Range == "" {
		req.Range = h.sheetRange
	}

	rows, err := h.reports.ExportRecords(c.Request.Context(), req.Range, h.ctrl.Filtered())
	if errors.Is(err, reporting.ErrExportDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("report export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "report export failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "range": req.Range})
}

// Snapshot returns the latest archived snapshot of a report kind.
func (h *ReportHandler) Snapshot(c *gin.Context) {
	kind := c.Param("kind")

	snapshot, err := h.reports.LatestSnapshot(c.Request.Context(), kind)
	switch {
	case errors.Is(err, reporting.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, reporting.ErrUnknownKind), errors.Is(err, reporting.ErrSnapshotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("report snapshot lookup failed", zap.String("kind", kind), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report snapshot lookup failed"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
