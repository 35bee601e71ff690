// Package repository declares the storage contracts used by the services.
// Backends live in subpackages and are interchangeable.
package repository

import (
	"context"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

// ReportStore persists shift reports. UpsertReport is keyed by the
// (employeeId, shift, date) slot: a record for an occupied slot replaces the
// stored one and keeps its id.
type ReportStore interface {
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ShiftReport, error)
	GetReport(ctx context.Context, id string) (models.ShiftReport, error)
	UpsertReport(ctx context.Context, report models.ShiftReport) (models.ShiftReport, error)
	DeleteReport(ctx context.Context, id string) error
}

// EmployeeStore persists employee accounts. SaveEmployee inserts or replaces by username.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	SaveEmployee(ctx context.Context, employee models.Employee) error
}

// Store is a full backend.
type Store interface {
	ReportStore
	EmployeeStore
	Close(ctx context.Context) error
}
