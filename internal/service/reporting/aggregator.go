package reporting

import (
	"math"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

// BuildSummaryRows groups reports by employee, in order of first appearance,
// and reduces each group to a DailySummaryRow. The input is not modified.
func BuildSummaryRows(reports []models.ShiftReport) []models.DailySummaryRow {
	rows := make([]models.DailySummaryRow, 0)
	index := make(map[string]int)

	scoreSum := make(map[string]float64)
	scoreCount := make(map[string]int)

	for _, r := range reports {
		i, ok := index[r.EmployeeID]
		if !ok {
			i = len(rows)
			index[r.EmployeeID] = i
			rows = append(rows, models.DailySummaryRow{
				EmployeeID:    r.EmployeeID,
				EmployeeName:  r.EmployeeName,
				Needs:         []string{},
				Notes:         []string{},
				Tasks:         []string{},
				Issues:        []string{},
				HandoverNotes: []string{},
			})
		}

		row := &rows[i]
		row.TotalShifts++
		row.TotalVisitors += r.VisitorsCount
		row.TotalCalls += r.CallsCount
		row.TotalSocialMedia += r.SocialMediaCount
		row.TotalInteraction += r.VisitorsCount + r.CallsCount + r.SocialMediaCount
		row.TotalEntry += r.EntryCount
		row.TotalExit += r.ExitCount
		row.TotalDailyRevenue += r.DailyRevenue
		row.TotalRevenue += r.TotalRevenue

		row.Needs = appendNonEmpty(row.Needs, r.Needs)
		row.Notes = appendNonEmpty(row.Notes, r.Notes)
		row.Tasks = appendNonEmpty(row.Tasks, r.TasksCompleted)
		row.Issues = appendNonEmpty(row.Issues, r.Issues)
		row.HandoverNotes = appendNonEmpty(row.HandoverNotes, r.HandoverNotes)

		// Unrated shifts stay out of both the sum and the count.
		if r.ProductivityScore != nil {
			scoreSum[r.EmployeeID] += *r.ProductivityScore
			scoreCount[r.EmployeeID]++
		}
	}

	for i := range rows {
		row := &rows[i]
		row.TotalDailyRevenue = round2(row.TotalDailyRevenue)
		row.TotalRevenue = round2(row.TotalRevenue)

		if n := scoreCount[row.EmployeeID]; n > 0 {
			avg := round2(scoreSum[row.EmployeeID] / float64(n))
			row.ProductivityAverage = &avg
		}
	}

	return rows
}

// Totals sums summary rows into a single grand-total row for the whole period.
func Totals(rows []models.DailySummaryRow) models.DailySummaryRow {
	total := models.DailySummaryRow{EmployeeName: "Total"}
	for _, row := range rows {
		total.TotalShifts += row.TotalShifts
		total.TotalVisitors += row.TotalVisitors
		total.TotalCalls += row.TotalCalls
		total.TotalSocialMedia += row.TotalSocialMedia
		total.TotalInteraction += row.TotalInteraction
		total.TotalEntry += row.TotalEntry
		total.TotalExit += row.TotalExit
		total.TotalDailyRevenue += row.TotalDailyRevenue
		total.TotalRevenue += row.TotalRevenue
	}
	total.TotalDailyRevenue = round2(total.TotalDailyRevenue)
	total.TotalRevenue = round2(total.TotalRevenue)
	return total
}

func appendNonEmpty(list []string, value string) []string {
	if value == "" {
		return list
	}
	return append(list, value)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
