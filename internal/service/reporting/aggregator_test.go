package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

func score(v float64) *float64 { return &v }

func TestBuildSummaryRows_EmptyInput(t *testing.T) {
	rows := BuildSummaryRows(nil)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBuildSummaryRows_GroupsInFirstAppearanceOrder(t *testing.T) {
	reports := []models.ShiftReport{
		{EmployeeID: "e2", EmployeeName: "Zaid", Shift: models.ShiftMorning, VisitorsCount: 3, CallsCount: 1},
		{EmployeeID: "e1", EmployeeName: "Amal", Shift: models.ShiftMorning, VisitorsCount: 5, SocialMediaCount: 2},
		{EmployeeID: "e2", EmployeeName: "Zaid", Shift: models.ShiftEvening, VisitorsCount: 4, EntryCount: 7, ExitCount: 6},
		{EmployeeID: "e3", EmployeeName: "Basel", Shift: models.ShiftNight},
	}

	rows := BuildSummaryRows(reports)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"e2", "e1", "e3"}, []string{rows[0].EmployeeID, rows[1].EmployeeID, rows[2].EmployeeID})

	zaid := rows[0]
	assert.Equal(t, "Zaid", zaid.EmployeeName)
	assert.Equal(t, 2, zaid.TotalShifts)
	assert.Equal(t, 7, zaid.TotalVisitors)
	assert.Equal(t, 1, zaid.TotalCalls)
	assert.Equal(t, 8, zaid.TotalInteraction)
	assert.Equal(t, 7, zaid.TotalEntry)
	assert.Equal(t, 6, zaid.TotalExit)

	basel := rows[2]
	assert.Equal(t, 1, basel.TotalShifts)
	assert.Zero(t, basel.TotalVisitors)
	assert.Nil(t, basel.ProductivityAverage)
}

func TestBuildSummaryRows_TotalShiftsMatchesRecordCount(t *testing.T) {
	var reports []models.ShiftReport
	want := map[string]int{"a": 3, "b": 1, "c": 2}
	for _, id := range []string{"a", "b", "a", "c", "a", "c"} {
		reports = append(reports, models.ShiftReport{EmployeeID: id})
	}

	rows := BuildSummaryRows(reports)
	require.Len(t, rows, len(want))
	for _, row := range rows {
		assert.Equal(t, want[row.EmployeeID], row.TotalShifts, row.EmployeeID)
	}
}

func TestBuildSummaryRows_ProductivityAverageSkipsUnrated(t *testing.T) {
	reports := []models.ShiftReport{
		{EmployeeID: "e1", ProductivityScore: score(80)},
		{EmployeeID: "e1"},
		{EmployeeID: "e1", ProductivityScore: score(60)},
		{EmployeeID: "e2", ProductivityScore: score(0)},
		{EmployeeID: "e3", ProductivityScore: score(100)},
		{EmployeeID: "e3", ProductivityScore: score(33)},
		{EmployeeID: "e3", ProductivityScore: score(33)},
	}

	rows := BuildSummaryRows(reports)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].ProductivityAverage)
	assert.Equal(t, 70.0, *rows[0].ProductivityAverage)

	// A zero score is a rating, not an absence.
	require.NotNil(t, rows[1].ProductivityAverage)
	assert.Equal(t, 0.0, *rows[1].ProductivityAverage)

	require.NotNil(t, rows[2].ProductivityAverage)
	assert.Equal(t, 55.33, *rows[2].ProductivityAverage)
}

func TestBuildSummaryRows_TextListsKeepOrderAndDropEmpty(t *testing.T) {
	reports := []models.ShiftReport{
		{EmployeeID: "e1", Needs: "", Notes: "quiet", Issues: "printer jam"},
		{EmployeeID: "e1", Needs: "Need A", TasksCompleted: "filing"},
		{EmployeeID: "e1", Needs: "", HandoverNotes: "keys at desk"},
		{EmployeeID: "e1", Needs: "Need B", TasksCompleted: "calls"},
	}

	rows := BuildSummaryRows(reports)
	require.Len(t, rows, 1)

	assert.Equal(t, []string{"Need A", "Need B"}, rows[0].Needs)
	assert.Equal(t, []string{"quiet"}, rows[0].Notes)
	assert.Equal(t, []string{"filing", "calls"}, rows[0].Tasks)
	assert.Equal(t, []string{"printer jam"}, rows[0].Issues)
	assert.Equal(t, []string{"keys at desk"}, rows[0].HandoverNotes)
}

func TestBuildSummaryRows_RevenueTotalsRounded(t *testing.T) {
	reports := []models.ShiftReport{
		{EmployeeID: "e1", DailyRevenue: 0.1, TotalRevenue: 100.25},
		{EmployeeID: "e1", DailyRevenue: 0.2, TotalRevenue: 50.5},
	}

	rows := BuildSummaryRows(reports)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.3, rows[0].TotalDailyRevenue)
	assert.Equal(t, 150.75, rows[0].TotalRevenue)
}

func TestBuildSummaryRows_DoesNotMutateInput(t *testing.T) {
	reports := []models.ShiftReport{
		{ID: "r1", EmployeeID: "e1", Needs: "x", ProductivityScore: score(10)},
	}
	before := reports[0]

	_ = BuildSummaryRows(reports)
	assert.Equal(t, before, reports[0])
}

func TestTotals(t *testing.T) {
	rows := BuildSummaryRows([]models.ShiftReport{
		{EmployeeID: "e1", VisitorsCount: 2, CallsCount: 1, TotalRevenue: 10},
		{EmployeeID: "e2", VisitorsCount: 3, ExitCount: 4, TotalRevenue: 5.5},
	})

	total := Totals(rows)
	assert.Equal(t, 2, total.TotalShifts)
	assert.Equal(t, 5, total.TotalVisitors)
	assert.Equal(t, 6, total.TotalInteraction)
	assert.Equal(t, 4, total.TotalExit)
	assert.Equal(t, 15.5, total.TotalRevenue)
}
