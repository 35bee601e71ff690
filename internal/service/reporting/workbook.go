package reporting

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

// Workbook sheet names and the MIME type used for downloads and attachments.
const (
	ReportsSheet  = "Shift Reports"
	SummarySheet  = "Daily Summary"
	WorkbookMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	listSeparator = " | "
)

type column struct {
	header string
	width  float64
}

var reportColumns = []column{
	{"Date", 12}, {"Day", 12}, {"Employee", 18}, {"Shift", 22},
	{"Shift Start", 12}, {"Shift End", 12},
	{"Visitors", 10}, {"Calls", 10}, {"Social Media", 14}, {"Entries", 10}, {"Exits", 10},
	{"Needs", 30}, {"Notes", 30}, {"Tasks Completed", 30}, {"Issues", 30}, {"Handover Notes", 30},
	{"Productivity", 12}, {"Revenue Details", 24}, {"Daily Revenue", 14}, {"Total Revenue", 14},
}

var summaryColumns = []column{
	{"Employee", 18}, {"Shifts", 10},
	{"Visitors", 10}, {"Calls", 10}, {"Social Media", 14}, {"Interactions", 14},
	{"Entries", 10}, {"Exits", 10},
	{"Daily Revenue", 14}, {"Total Revenue", 14}, {"Productivity Avg", 16},
	{"Needs", 40}, {"Notes", 40}, {"Tasks", 40}, {"Issues", 40}, {"Handover Notes", 40},
}

// WorkbookFileName names the export for the given period label.
func WorkbookFileName(label string) string {
	return fmt.Sprintf("daily-report-%s.xlsx", label)
}

// BuildWorkbook renders the reports and their summary rows into an .xlsx
// document with one sheet of raw reports and one of per-employee totals.
func BuildWorkbook(reports []models.ShiftReport, rows []models.DailySummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	if err := writeHeader(f, ReportsSheet, reportColumns); err != nil {
		return nil, err
	}
	for i, r := range reports {
		if err := writeRow(f, ReportsSheet, i+2, reportValues(r)); err != nil {
			return nil, err
		}
	}

	if err := writeHeader(f, SummarySheet, summaryColumns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := writeRow(f, SummarySheet, i+2, SummaryValues(row)); err != nil {
			return nil, err
		}
	}
	if len(rows) > 0 {
		if err := writeRow(f, SummarySheet, len(rows)+2, SummaryValues(Totals(rows))); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryValues flattens a summary row into spreadsheet cells.
func SummaryValues(row models.DailySummaryRow) []interface{} {
	var productivity interface{} = ""
	if row.ProductivityAverage != nil {
		productivity = *row.ProductivityAverage
	}
	return []interface{}{
		row.EmployeeName, row.TotalShifts,
		row.TotalVisitors, row.TotalCalls, row.TotalSocialMedia, row.TotalInteraction,
		row.TotalEntry, row.TotalExit,
		row.TotalDailyRevenue, row.TotalRevenue, productivity,
		strings.Join(row.Needs, listSeparator),
		strings.Join(row.Notes, listSeparator),
		strings.Join(row.Tasks, listSeparator),
		strings.Join(row.Issues, listSeparator),
		strings.Join(row.HandoverNotes, listSeparator),
	}
}

func reportValues(r models.ShiftReport) []interface{} {
	var productivity interface{} = ""
	if r.ProductivityScore != nil {
		productivity = *r.ProductivityScore
	}
	return []interface{}{
		r.Date, r.DayName, r.EmployeeName, r.Shift.Label(), r.ShiftStart, r.ShiftEnd,
		r.VisitorsCount, r.CallsCount, r.SocialMediaCount, r.EntryCount, r.ExitCount,
		r.Needs, r.Notes, r.TasksCompleted, r.Issues, r.HandoverNotes,
		productivity, r.DailyRevenueDetails, r.DailyRevenue, r.TotalRevenue,
	}
}

func writeHeader(f *excelize.File, sheet string, columns []column) error {
	headers := make([]interface{}, len(columns))
	for i, c := range columns {
		headers[i] = c.header

		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return fmt.Errorf("set column width on %s: %w", sheet, err)
		}
	}

	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNo, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNo, err)
	}
	return nil
}
