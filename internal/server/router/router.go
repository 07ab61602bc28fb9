package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Screens     *handlers.ScreenHandler
	Adjustments *handlers.AdjustmentHandler
	Reports     *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	api.GET("/screens/:screen", h.Screens.Get)
	api.PATCH("/screens/:screen/filter", h.Screens.SetFilter)
	api.POST("/screens/:screen/refresh", h.Screens.Refresh)
	api.GET("/screens/:screen/notifications", h.Screens.Notifications)
	api.GET("/locations", h.Screens.Locations)

	api.POST("/adjustments", h.Adjustments.Create)
	api.PUT("/adjustments/:id", h.Adjustments.Update)
	api.DELETE("/adjustments/:id", h.Adjustments.Delete)

	api.POST("/reports/export", h.Reports.Export)
	api.GET("/reports/snapshots/:kind", h.Reports.Snapshot)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
