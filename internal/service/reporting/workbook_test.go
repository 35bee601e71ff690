package reporting

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

func TestBuildWorkbook_TwoSheets(t *testing.T) {
	reports := []models.ShiftReport{
		report("e1", "Amal", models.ShiftMorning, func(r *models.ShiftReport) {
			r.VisitorsCount = 5
			r.Needs = "printer ink"
			r.DailyRevenue = 210
		}),
		report("e1", "Amal", models.ShiftEvening, func(r *models.ShiftReport) {
			r.VisitorsCount = 2
			r.Needs = "chairs"
		}),
	}

	data, err := BuildWorkbook(reports, BuildSummaryRows(reports))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ReportsSheet, SummarySheet}, f.GetSheetList())

	reportRows, err := f.GetRows(ReportsSheet)
	require.NoError(t, err)
	require.Len(t, reportRows, 3)
	assert.Equal(t, "Date", reportRows[0][0])
	assert.Equal(t, "morning (09:00-17:00)", reportRows[1][3])
	assert.Equal(t, "5", reportRows[1][6])

	summaryRows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summaryRows, 3, "header, one employee and the total row")
	assert.Equal(t, "Amal", summaryRows[1][0])
	assert.Equal(t, "2", summaryRows[1][1])
	assert.Equal(t, "7", summaryRows[1][2])
	assert.Equal(t, "printer ink | chairs", summaryRows[1][11])
	assert.Equal(t, "Total", summaryRows[2][0])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	data, err := BuildWorkbook(nil, BuildSummaryRows(nil))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWorkbookFileName(t *testing.T) {
	assert.Equal(t, "daily-report-2024-05-01.xlsx", WorkbookFileName("2024-05-01"))
	assert.Equal(t, "daily-report-all.xlsx", WorkbookFileName(models.ReportFilter{}.Label()))
}

func TestSummaryValues_MissingProductivity(t *testing.T) {
	values := SummaryValues(models.DailySummaryRow{EmployeeName: "Amal", Tasks: []string{"a", "b"}})
	assert.Equal(t, "", values[10])
	assert.Equal(t, "a | b", values[13])
}
