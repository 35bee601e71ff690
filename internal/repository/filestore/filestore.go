// Package filestore keeps employees and reports in two JSON files. Every write
// rewrites the whole collection through a temp file and a rename so a crash
// never leaves a truncated file behind.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

const (
	employeesFile = "employees.json"
	reportsFile   = "reports.json"
)

// Store is a flat-file backend.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *zap.Logger
}

// New prepares the data directory. Missing collection files are created empty.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return nil, errors.New("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	s := &Store{dir: dir, logger: logger}
	for _, name := range []string{employeesFile, reportsFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			if err := writeJSON(path, []struct{}{}); err != nil {
				return nil, err
			}
			logger.Info("created empty collection", zap.String("path", path))
		}
	}
	return s, nil
}

// ListReports returns reports matching the filter in stored order.
func (s *Store) ListReports(_ context.Context, filter models.ReportFilter) ([]models.ShiftReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readReports()
	if err != nil {
		return nil, err
	}

	out := make([]models.ShiftReport, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetReport finds a report by id.
func (s *Store) GetReport(_ context.Context, id string) (models.ShiftReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readReports()
	if err != nil {
		return models.ShiftReport{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return models.ShiftReport{}, fmt.Errorf("%w: report %s", models.ErrNotFound, id)
}

// UpsertReport replaces the record occupying the same slot or appends a new one.
func (s *Store) UpsertReport(_ context.Context, report models.ShiftReport) (models.ShiftReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readReports()
	if err != nil {
		return models.ShiftReport{}, err
	}

	replaced := false
	for i := range all {
		if all[i].SameSlot(report) {
			report.ID = all[i].ID
			all[i] = report
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, report)
	}

	if err := writeJSON(s.path(reportsFile), all); err != nil {
		return models.ShiftReport{}, err
	}

	s.logger.Debug("report stored", zap.String("id", report.ID), zap.Bool("replaced", replaced))
	return report, nil
}

// DeleteReport removes a report by id.
func (s *Store) DeleteReport(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readReports()
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID == id {
			all = append(all[:i], all[i+1:]...)
			return writeJSON(s.path(reportsFile), all)
		}
	}
	return fmt.Errorf("%w: report %s", models.ErrNotFound, id)
}

// ListEmployees returns every known employee.
func (s *Store) ListEmployees(_ context.Context) ([]models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEmployees()
}

// SaveEmployee inserts or replaces an employee keyed by username.
func (s *Store) SaveEmployee(_ context.Context, employee models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readEmployees()
	if err != nil {
		return err
	}

	replaced := false
	for i := range all {
		if all[i].Username == employee.Username {
			employee.ID = all[i].ID
			all[i] = employee
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, employee)
	}
	return writeJSON(s.path(employeesFile), all)
}

// Close is a no-op; files are not held open between calls.
func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) readReports() ([]models.ShiftReport, error) {
	var reports []models.ShiftReport
	if err := readJSON(s.path(reportsFile), &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *Store) readEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := readJSON(s.path(employeesFile), &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
