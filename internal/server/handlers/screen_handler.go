package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/service/listing"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
)

// NotificationSource lists recent notifications of a screen.
type NotificationSource interface {
	Recent(screen string, limit int) []models.Notification
}

// ScreenHandler exposes the list screens over HTTP.
type ScreenHandler struct {
	screens       map[string]*listing.Controller
	notifications NotificationSource
	client        actionapi.Caller
	logger        *zap.Logger
}

// NewScreenHandler constructs the HTTP handler adapter.
func NewScreenHandler(screens []*listing.Controller, notifications NotificationSource, client actionapi.Caller, logger *zap.Logger) *ScreenHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]*listing.Controller, len(screens))
	for _, s := range screens {
		byName[s.Name()] = s
	}
	return &ScreenHandler{screens: byName, notifications: notifications, client: client, logger: logger}
}

// Get returns the current view of a screen.
func (h *ScreenHandler) Get(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.View())
}

// SetFilter merges a partial filter. Page-only changes are fetched before
// responding; other changes are fetched after the debounce period.
func (h *ScreenHandler) SetFilter(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}

	var patch models.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid filter payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Fetch failures are part of the view.
	_ = ctrl.SetFilter(c.Request.Context(), patch)
	c.JSON(http.StatusOK, ctrl.View())
}

// Refresh fetches the screen immediately.
func (h *ScreenHandler) Refresh(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	_ = ctrl.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, ctrl.View())
}

// Notifications lists the latest toasts of a screen.
func (h *ScreenHandler) Notifications(c *gin.Context) {
	ctrl, ok := h.lookup(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": h.notifications.Recent(ctrl.Name(), limit)})
}

// Locations serves the location dropdown of the movement history screen.
func (h *ScreenHandler) Locations(c *gin.Context) {
	locations, err := listing.Locations(c.Request.Context(), h.client)
	if err != nil {
		h.logger.Warn("failed loading locations", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *ScreenHandler) lookup(c *gin.Context) (*listing.Controller, bool) {
	ctrl, ok := h.screens[c.Param("screen")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown screen"})
		return nil, false
	}
	return ctrl, true
}
