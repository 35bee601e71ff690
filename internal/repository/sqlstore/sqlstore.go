// Package sqlstore is the relational backend, driven through gorm. Postgres is
// used in deployments; sqlite serves single-host installs and tests.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store implements repository.Store on top of gorm.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open connects with the named driver and migrates the schema.
func Open(driver, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.Employee{}, &models.ShiftReport{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	logger.Info("sql store ready", zap.String("driver", driver))
	return &Store{db: db, logger: logger}, nil
}

// ListReports returns reports matching the filter in insertion order.
func (s *Store) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ShiftReport, error) {
	q := s.db.WithContext(ctx).Model(&models.ShiftReport{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Shift != "" {
		q = q.Where("shift = ?", filter.Shift)
	}
	switch {
	case filter.Date != "":
		q = q.Where("date = ?", filter.Date)
	default:
		if filter.From != "" {
			q = q.Where("date >= ?", filter.From)
		}
		if filter.To != "" {
			q = q.Where("date <= ?", filter.To)
		}
	}

	reports := make([]models.ShiftReport, 0)
	if err := q.Order("created_at").Order("id").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return reports, nil
}

// GetReport loads one report by id.
func (s *Store) GetReport(ctx context.Context, id string) (models.ShiftReport, error) {
	var report models.ShiftReport
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ShiftReport{}, fmt.Errorf("%w: report %s", models.ErrNotFound, id)
	}
	if err != nil {
		return models.ShiftReport{}, fmt.Errorf("load report %s: %w", id, err)
	}
	return report, nil
}

// UpsertReport replaces the row occupying the slot, keeping its id.
func (s *Store) UpsertReport(ctx context.Context, report models.ShiftReport) (models.ShiftReport, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ShiftReport
		err := tx.Where("employee_id = ? AND shift = ? AND date = ?", report.EmployeeID, report.Shift, report.Date).
			First(&existing).Error
		switch {
		case err == nil:
			report.ID = existing.ID
			report.CreatedAt = existing.CreatedAt
			return tx.Model(&existing).Select("*").Omit("id", "created_at").Updates(&report).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&report).Error
		default:
			return err
		}
	})
	if err != nil {
		return models.ShiftReport{}, fmt.Errorf("upsert report: %w", err)
	}
	return report, nil
}

// DeleteReport removes a report by id.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ShiftReport{})
	if res.Error != nil {
		return fmt.Errorf("delete report %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: report %s", models.ErrNotFound, id)
	}
	return nil
}

// ListEmployees returns every employee.
func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees := make([]models.Employee, 0)
	if err := s.db.WithContext(ctx).Order("name").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	return employees, nil
}

// SaveEmployee inserts or replaces an employee keyed by username.
func (s *Store) SaveEmployee(ctx context.Context, employee models.Employee) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "password_hash"}),
	}).Create(&employee).Error
	if err != nil {
		return fmt.Errorf("save employee %s: %w", employee.Username, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
