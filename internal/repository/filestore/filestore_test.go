package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir, nil)
	require.NoError(t, err)
	return s, dir
}

func TestNew_CreatesEmptyCollections(t *testing.T) {
	_, dir := newStore(t)

	for _, name := range []string{employeesFile, reportsFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	}
}

func TestUpsertReport_ReplacesSameSlotAndKeepsID(t *testing.T) {
	s, dir := newStore(t)
	ctx := context.Background()

	first, err := s.UpsertReport(ctx, models.ShiftReport{ID: "r1", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01", VisitorsCount: 3})
	require.NoError(t, err)
	assert.Equal(t, "r1", first.ID)

	second, err := s.UpsertReport(ctx, models.ShiftReport{ID: "r2", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01", VisitorsCount: 9})
	require.NoError(t, err)
	assert.Equal(t, "r1", second.ID)

	_, err = s.UpsertReport(ctx, models.ShiftReport{ID: "r3", EmployeeID: "e1", Shift: models.ShiftEvening, Date: "2024-05-01"})
	require.NoError(t, err)

	all, err := s.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 9, all[0].VisitorsCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp file left behind")
	}
}

func TestListReports_Filters(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for _, r := range []models.ShiftReport{
		{ID: "a", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01"},
		{ID: "b", EmployeeID: "e2", Shift: models.ShiftMorning, Date: "2024-05-02"},
		{ID: "c", EmployeeID: "e1", Shift: models.ShiftNight, Date: "2024-05-03"},
	} {
		_, err := s.UpsertReport(ctx, r)
		require.NoError(t, err)
	}

	byDate, err := s.ListReports(ctx, models.ReportFilter{Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "b", byDate[0].ID)

	byRange, err := s.ListReports(ctx, models.ReportFilter{From: "2024-05-02", To: "2024-05-03"})
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	byEmployee, err := s.ListReports(ctx, models.ReportFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.Len(t, byEmployee, 2)
}

func TestDeleteReport(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.UpsertReport(ctx, models.ShiftReport{ID: "a", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteReport(ctx, "a"))
	assert.ErrorIs(t, s.DeleteReport(ctx, "a"), models.ErrNotFound)

	_, err = s.GetReport(ctx, "a")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSaveEmployee_ReplacesByUsername(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, models.Employee{ID: "e1", Username: "amal", Name: "Amal", Role: models.RoleEmployee}))
	require.NoError(t, s.SaveEmployee(ctx, models.Employee{ID: "other", Username: "amal", Name: "Amal K.", Role: models.RoleManager}))

	employees, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "e1", employees[0].ID)
	assert.Equal(t, "Amal K.", employees[0].Name)
	assert.Equal(t, models.RoleManager, employees[0].Role)
}

func TestReadsRecordsFromOlderSchema(t *testing.T) {
	s, dir := newStore(t)
	legacy := `[{"id":"old","employeeId":"e1","employeeName":"Amal","shift":"morning","date":"2023-01-01","visitorsCount":4,"needs":"paper"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, reportsFile), []byte(legacy), 0o644))

	reports, err := s.ListReports(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 4, reports[0].VisitorsCount)
	assert.Nil(t, reports[0].ProductivityScore)
	assert.Zero(t, reports[0].TotalRevenue)
}
