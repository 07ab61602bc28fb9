package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/listing"
)

// AdjustmentHandler serves the stock adjustment form actions.
type AdjustmentHandler struct {
	ctrl   *listing.Controller
	logger *zap.Logger
}

// NewAdjustmentHandler constructs the HTTP handler adapter.
func NewAdjustmentHandler(ctrl *listing.Controller, logger *zap.Logger) *AdjustmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjustmentHandler{ctrl: ctrl, logger: logger}
}

// Create submits a new adjustment and returns the refreshed view.
func (h *AdjustmentHandler) Create(c *gin.Context) {
	var adj models.Adjustment
	if err := c.ShouldBindJSON(&adj); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.ctrl.Create(c.Request.Context(), adj); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.ctrl.View())
}

// Update submits changes to the adjustment named in the path.
func (h *AdjustmentHandler) Update(c *gin.Context) {
	var adj models.Adjustment
	if err := c.ShouldBindJSON(&adj); err != nil {
		h.logger.Warn("invalid adjustment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	adj.ID = c.Param("id")

	if err := h.ctrl.Update(c.Request.Context(), adj); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ctrl.View())
}

// Delete removes the adjustment named in the path. The client must pass
// confirm=true once the user approved the dialog.
func (h *AdjustmentHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	confirm := listing.ConfirmFunc(func(context.Context, string) bool { return confirmed })

	if err := h.ctrl.Delete(c.Request.Context(), c.Param("id"), confirm); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ctrl.View())
}
