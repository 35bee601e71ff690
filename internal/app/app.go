// Package app assembles stores and services from configuration. It is shared
// by the HTTP server and the shiftctl command.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/config"
	"github.com/mamadbah2/shiftreport/internal/repository"
	"github.com/mamadbah2/shiftreport/internal/repository/filestore"
	"github.com/mamadbah2/shiftreport/internal/repository/mongodb"
	"github.com/mamadbah2/shiftreport/internal/repository/sessions"
	"github.com/mamadbah2/shiftreport/internal/repository/sheets"
	"github.com/mamadbah2/shiftreport/internal/repository/sqlstore"
	"github.com/mamadbah2/shiftreport/internal/service/auth"
	"github.com/mamadbah2/shiftreport/internal/service/mailer"
	"github.com/mamadbah2/shiftreport/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/shiftreport/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/shiftreport/pkg/clients/whatsapp"
)

// OpenStore connects the configured storage backend.
func OpenStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (repository.Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		store repository.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendFile:
		store, err = openFile(cfg.DataDir, logger)
	case config.BackendMongo:
		store, err = openMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	case config.BackendPostgres:
		store, err = openSQL(sqlstore.DriverPostgres, cfg.PostgresDSN, logger)
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		store, err = openSQL(sqlstore.DriverSQLite, cfg.SQLitePath, logger)
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("store opened", zap.String("backend", cfg.Backend))
	return store, nil
}

func openFile(dir string, logger *zap.Logger) (repository.Store, error) {
	s, err := filestore.New(dir, logger.Named("repo.file"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openMongo(ctx context.Context, uri, dbName string) (repository.Store, error) {
	s, err := mongodb.NewMongoDBRepository(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openSQL(driver, dsn string, logger *zap.Logger) (repository.Store, error) {
	s, err := sqlstore.Open(driver, dsn, logger.Named("repo.sql"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSessions builds the configured session store. The returned close
// function releases any connection held by the store.
func OpenSessions(ctx context.Context, cfg config.SessionsConfig) (auth.SessionStore, func() error, error) {
	switch cfg.Backend {
	case config.SessionsMemory:
		return sessions.NewMemoryStore(cfg.TTL), func() error { return nil }, nil
	case config.SessionsRedis:
		store, err := sessions.DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session backend %q", cfg.Backend)
	}
}

// NewReporting wires the reporting service with the mail transport and any
// configured side channels.
func NewReporting(ctx context.Context, cfg *config.Config, reports reporting.ReportLister, logger *zap.Logger) (*reporting.Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	transport, err := mailer.New(cfg.Mail, logger.Named("svc.mailer"))
	if err != nil {
		return nil, err
	}

	opts := reporting.Options{
		Recipient: cfg.Mail.Recipient,
		OutputDir: cfg.Reporting.OutputDir,
		Logger:    logger.Named("svc.reporting"),
	}

	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"))
		if err != nil {
			return nil, err
		}
		opts.Publisher = sheets.NewSummaryPublisher(repo, cfg.Sheets.SummaryRange, logger.Named("repo.sheets"))
		logger.Info("google sheets publishing enabled")
	}

	if cfg.WhatsApp.Enabled() {
		client := whatsappclient.NewClient(cfg.WhatsApp)
		opts.Digest = whatsappsvc.NewMetaWhatsAppService(client, cfg.WhatsApp.ManagerPhone, logger.Named("svc.whatsapp"))
		logger.Info("whatsapp digest enabled")
	}

	return reporting.NewService(reports, transport, opts), nil
}
