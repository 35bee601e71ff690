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

	"github.com/mamadbah2/shiftreport/internal/app"
	"github.com/mamadbah2/shiftreport/internal/config"
	"github.com/mamadbah2/shiftreport/internal/scheduler"
	"github.com/mamadbah2/shiftreport/internal/server/handlers"
	"github.com/mamadbah2/shiftreport/internal/server/router"
	authsvc "github.com/mamadbah2/shiftreport/internal/service/auth"
	reportsvc "github.com/mamadbah2/shiftreport/internal/service/reports"
	"github.com/mamadbah2/shiftreport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	store, err := app.OpenStore(startupCtx, cfg.Storage, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open report store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close report store", zap.Error(err))
		}
	}()

	sessionStore, closeSessions, err := app.OpenSessions(startupCtx, cfg.Sessions)
	if err != nil {
		baseLogger.Fatal("failed to open session store", zap.Error(err))
	}
	defer func() {
		if err := closeSessions(); err != nil {
			baseLogger.Error("failed to close session store", zap.Error(err))
		}
	}()

	reportingSvc, err := app.NewReporting(startupCtx, cfg, store, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init reporting service", zap.Error(err))
	}

	location, err := cfg.Reporting.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}

	authService := authsvc.NewService(store, sessionStore, logger.Named(baseLogger, "svc.auth"))
	reportService := reportsvc.NewService(store, logger.Named(baseLogger, "svc.reports"))

	authHandler := handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth"))
	reportHandler := handlers.NewReportHandler(reportService, reportingSvc, location, logger.Named(baseLogger, "handlers.reports"))
	engine := router.New(authHandler, reportHandler, logger.Named(baseLogger, "router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("store", cfg.Storage.Backend),
			zap.String("sessions", cfg.Sessions.Backend))
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
