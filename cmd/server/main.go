package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/scheduler"
	"github.com/mamadbah2/stockdesk/internal/server/handlers"
	"github.com/mamadbah2/stockdesk/internal/server/router"
	auditsvc "github.com/mamadbah2/stockdesk/internal/service/audit"
	"github.com/mamadbah2/stockdesk/internal/service/listing"
	"github.com/mamadbah2/stockdesk/internal/service/notify"
	reportingsvc "github.com/mamadbah2/stockdesk/internal/service/reporting"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
	whatsappclient "github.com/mamadbah2/stockdesk/pkg/clients/whatsapp"
	"github.com/mamadbah2/stockdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := actionapi.NewClient(cfg.InventoryAPI, logger.Named(baseLogger, "client.actionapi"))
	notifications := notify.NewCenter(cfg.Screens.NotificationsN, logger.Named(baseLogger, "svc.notify"))
	auditSvc := auditsvc.NewService(apiClient, cfg.Screens.AuditTimeout, logger.Named(baseLogger, "svc.audit"))
	defer auditSvc.Wait()

	newController := func(screen listing.Screen) *listing.Controller {
		return listing.NewController(screen, apiClient, listing.Options{
			Debounce:     cfg.Screens.Debounce,
			FetchTimeout: cfg.Screens.FetchTimeout,
			Notifier:     notifications,
			Audit:        auditSvc,
			Logger:       logger.Named(baseLogger, "svc.listing."+screen.Name),
		})
	}
	movements := newController(listing.MovementHistoryScreen(cfg.Screens.PageSize))
	reports := newController(listing.ReportsScreen(cfg.Screens.PageSize))
	adjustments := newController(listing.StockAdjustmentsScreen(cfg.Screens.PageSize))
	screens := []*listing.Controller{movements, reports, adjustments}
	defer func() {
		for _, s := range screens {
			s.Close()
		}
	}()

	var reportingOpts []reportingsvc.Option

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingOpts = append(reportingOpts, reportingsvc.WithSheet(sheetsRepo))
	} else {
		baseLogger.Warn("google sheets export id missing, report export disabled")
	}

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportingOpts = append(reportingOpts, reportingsvc.WithArchive(mongoRepo))
	} else {
		baseLogger.Warn("mongodb uri missing, report snapshots will not be archived")
	}

	if cfg.Alerts.Enabled() {
		reportingOpts = append(reportingOpts, reportingsvc.WithAlerts(whatsappclient.NewClient(cfg.Alerts), cfg.Alerts.Recipient))
		baseLogger.Info("whatsapp low stock alerts enabled")
	}

	reportingSvc := reportingsvc.NewService(apiClient, baseLogger.Named("svc.reporting"), reportingOpts...)

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	engine := router.New(router.Handlers{
		Screens:     handlers.NewScreenHandler(screens, notifications, apiClient, baseLogger.Named("handlers.screens")),
		Adjustments: handlers.NewAdjustmentHandler(adjustments, baseLogger.Named("handlers.adjustments")),
		Reports:     handlers.NewReportHandler(reports, reportingSvc, cfg.Sheets.ExportRange, baseLogger.Named("handlers.reports")),
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load of every screen.
	for _, s := range screens {
		go func(s *listing.Controller) {
			loadCtx, cancel := context.WithTimeout(ctx, cfg.Screens.FetchTimeout)
			defer cancel()
			_ = s.Refresh(loadCtx)
		}(s)
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
