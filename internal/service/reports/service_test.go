package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/repository/filestore"
)

func newTestService(t *testing.T) (*Service, *filestore.Store) {
	t.Helper()

	store, err := filestore.New(t.TempDir(), nil)
	require.NoError(t, err)
	for _, e := range testRoster {
		require.NoError(t, store.SaveEmployee(context.Background(), e))
	}

	svc := NewService(store, nil)
	ids := 0
	svc.normalizer = Normalizer{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			ids++
			return fmt.Sprintf("r%d", ids)
		},
	}
	return svc, store
}

func TestSubmit_UpsertKeepsID(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first, created, err := svc.Submit(ctx, employeeAmal, Submission{
		Shift: "morning", Date: "2024-05-01", VisitorsCount: float64(3),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "r1", first.ID)

	second, created, err := svc.Submit(ctx, employeeAmal, Submission{
		Shift: "morning", Date: "2024-05-01", VisitorsCount: float64(9),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	all, err := store.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 9, all[0].VisitorsCount)
}

func TestSubmit_DistinctSlots(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for _, sub := range []Submission{
		{Shift: "morning", Date: "2024-05-01"},
		{Shift: "evening", Date: "2024-05-01"},
		{Shift: "morning", Date: "2024-05-02"},
	} {
		_, created, err := svc.Submit(ctx, employeeAmal, sub)
		require.NoError(t, err)
		assert.True(t, created)
	}

	all, err := store.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSubmit_ValidationLeavesStoreUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Submit(ctx, employeeAmal, Submission{Shift: "lunch", Date: "2024-05-01"})
	assert.ErrorIs(t, err, models.ErrValidation)

	all, err := store.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestList_EmployeesSeeOnlyOwnReports(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Submit(ctx, employeeAmal, Submission{Shift: "night", Date: "2024-05-01"})
	require.NoError(t, err)
	_, _, err = svc.Submit(ctx, managerSara, Submission{EmployeeID: "e2", Shift: "night", Date: "2024-05-01"})
	require.NoError(t, err)

	mine, err := svc.List(ctx, employeeAmal, models.ReportFilter{EmployeeID: "e2"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "e1", mine[0].EmployeeID)

	everything, err := svc.List(ctx, managerSara, models.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestDelete_Authorization(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	theirs, _, err := svc.Submit(ctx, managerSara, Submission{EmployeeID: "e2", Shift: "night", Date: "2024-05-01"})
	require.NoError(t, err)

	err = svc.Delete(ctx, employeeAmal, theirs.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	all, err := store.ListReports(ctx, models.ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, managerSara, theirs.ID))

	err = svc.Delete(ctx, managerSara, theirs.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete_OwnReport(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mine, _, err := svc.Submit(ctx, employeeAmal, Submission{Shift: "night", Date: "2024-05-01"})
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, employeeAmal, mine.ID))
}

func TestSummary_RespectsVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Submit(ctx, employeeAmal, Submission{Shift: "night", Date: "2024-05-01", CallsCount: float64(4)})
	require.NoError(t, err)
	_, _, err = svc.Submit(ctx, managerSara, Submission{EmployeeID: "e2", Shift: "night", Date: "2024-05-01", CallsCount: float64(6)})
	require.NoError(t, err)

	rows, err := svc.Summary(ctx, employeeAmal, models.ReportFilter{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].TotalCalls)

	rows, err = svc.Summary(ctx, managerSara, models.ReportFilter{Date: "2024-05-01"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestEmployees_HidesCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	people, err := svc.Employees(context.Background())
	require.NoError(t, err)
	assert.Len(t, people, 3)
	assert.Contains(t, people, models.Identity{ID: "m1", Name: "Sara", Role: models.RoleManager})
}
