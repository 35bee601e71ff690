package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "reports.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", nil)
	assert.Error(t, err)
}

func TestUpsertReport_KeepsIDForSameSlot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	score := 75.0

	_, err := s.UpsertReport(ctx, models.ShiftReport{ID: "r1", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01", VisitorsCount: 2, ProductivityScore: &score})
	require.NoError(t, err)

	updated, err := s.UpsertReport(ctx, models.ShiftReport{ID: "r2", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01", VisitorsCount: 8})
	require.NoError(t, err)
	assert.Equal(t, "r1", updated.ID)

	all, err := s.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "r1", all[0].ID)
	assert.Equal(t, 8, all[0].VisitorsCount)
	assert.Nil(t, all[0].ProductivityScore, "replacement clears the previous score")
}

func TestListReports_Filters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, r := range []models.ShiftReport{
		{ID: "a", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01"},
		{ID: "b", EmployeeID: "e2", Shift: models.ShiftNight, Date: "2024-05-02"},
		{ID: "c", EmployeeID: "e1", Shift: models.ShiftEvening, Date: "2024-05-03"},
	} {
		_, err := s.UpsertReport(ctx, r)
		require.NoError(t, err)
	}

	got, err := s.ListReports(ctx, models.ReportFilter{Date: "2024-05-02"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	got, err = s.ListReports(ctx, models.ReportFilter{From: "2024-05-02"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.ListReports(ctx, models.ReportFilter{EmployeeID: "e1", Shift: models.ShiftEvening})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}

func TestDeleteAndGetReport(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertReport(ctx, models.ShiftReport{ID: "a", EmployeeID: "e1", Shift: models.ShiftMorning, Date: "2024-05-01"})
	require.NoError(t, err)

	got, err := s.GetReport(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "e1", got.EmployeeID)

	require.NoError(t, s.DeleteReport(ctx, "a"))
	assert.ErrorIs(t, s.DeleteReport(ctx, "a"), models.ErrNotFound)

	_, err = s.GetReport(ctx, "a")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSaveEmployee_UpsertsByUsername(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, models.Employee{ID: "e1", Username: "amal", Name: "Amal", Role: models.RoleEmployee, PasswordHash: "h1"}))
	require.NoError(t, s.SaveEmployee(ctx, models.Employee{ID: "e9", Username: "amal", Name: "Amal K.", Role: models.RoleManager, PasswordHash: "h2"}))

	employees, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "e1", employees[0].ID)
	assert.Equal(t, "Amal K.", employees[0].Name)
	assert.Equal(t, "h2", employees[0].PasswordHash)
}
