package reports

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/repository"
	"github.com/mamadbah2/shiftreport/internal/service/reporting"
)

// Store is the persistence surface the service needs.
type Store interface {
	repository.ReportStore
	repository.EmployeeStore
}

// Service implements report submission, listing and deletion with role-based
// visibility: managers see every report, employees only their own.
type Service struct {
	store      Store
	normalizer Normalizer
	logger     *zap.Logger
}

// NewService wires the reports service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, normalizer: NewNormalizer(), logger: logger}
}

// Submit validates and upserts a report. created is false when an existing
// report in the same (employee, shift, date) slot was replaced.
func (s *Service) Submit(ctx context.Context, caller models.Identity, sub Submission) (report models.ShiftReport, created bool, err error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return models.ShiftReport{}, false, fmt.Errorf("load employees: %w", err)
	}

	var existing []models.ShiftReport
	if date := strings.TrimSpace(sub.Date); date != "" {
		existing, err = s.store.ListReports(ctx, models.ReportFilter{Date: date})
		if err != nil {
			return models.ShiftReport{}, false, fmt.Errorf("load reports: %w", err)
		}
	}

	report, replaced, err := s.normalizer.Normalize(sub, caller, employees, existing)
	if err != nil {
		return models.ShiftReport{}, false, err
	}

	stored, err := s.store.UpsertReport(ctx, report)
	if err != nil {
		return models.ShiftReport{}, false, fmt.Errorf("store report: %w", err)
	}

	s.logger.Info("report submitted",
		zap.String("report_id", stored.ID),
		zap.String("employee_id", stored.EmployeeID),
		zap.String("shift", string(stored.Shift)),
		zap.String("date", stored.Date),
		zap.String("submitted_by", caller.ID),
		zap.Bool("replaced", replaced))

	return stored, !replaced, nil
}

// List returns the reports visible to caller.
func (s *Service) List(ctx context.Context, caller models.Identity, filter models.ReportFilter) ([]models.ShiftReport, error) {
	if !caller.IsManager() {
		filter.EmployeeID = caller.ID
	}
	reports, err := s.store.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Summary aggregates the reports visible to caller.
func (s *Service) Summary(ctx context.Context, caller models.Identity, filter models.ReportFilter) ([]models.DailySummaryRow, error) {
	reports, err := s.List(ctx, caller, filter)
	if err != nil {
		return nil, err
	}
	return reporting.BuildSummaryRows(reports), nil
}

// Delete removes a report. Employees may only delete their own reports.
func (s *Service) Delete(ctx context.Context, caller models.Identity, id string) error {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsManager() && report.EmployeeID != caller.ID {
		s.logger.Warn("delete refused", zap.String("report_id", id), zap.String("caller_id", caller.ID))
		return fmt.Errorf("%w: report %s belongs to another employee", models.ErrForbidden, id)
	}

	if err := s.store.DeleteReport(ctx, id); err != nil {
		return err
	}

	s.logger.Info("report deleted", zap.String("report_id", id), zap.String("caller_id", caller.ID))
	return nil
}

// Employees lists every employee without credentials.
func (s *Service) Employees(ctx context.Context) ([]models.Identity, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}

	out := make([]models.Identity, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.Identity())
	}
	return out, nil
}
