package models

import "time"

// DateLayout is the canonical calendar date format used across reports.
const DateLayout = "2006-01-02"

// ShiftReport is the canonical stored record of one employee's shift log.
// Fields added in later schema revisions are optional so older records decode
// with zero values instead of being dropped.
type ShiftReport struct {
	ID           string `json:"id" bson:"_id" gorm:"primaryKey;size:64"`
	EmployeeID   string `json:"employeeId" bson:"employee_id" gorm:"size:64;uniqueIndex:idx_report_slot"`
	EmployeeName string `json:"employeeName" bson:"employee_name"`
	Shift        Shift  `json:"shift" bson:"shift" gorm:"size:16;uniqueIndex:idx_report_slot"`
	Date         string `json:"date" bson:"date" gorm:"size:10;uniqueIndex:idx_report_slot;index"`
	DayName      string `json:"dayName" bson:"day_name"`
	ShiftStart   string `json:"shiftStart" bson:"shift_start"`
	ShiftEnd     string `json:"shiftEnd" bson:"shift_end"`

	VisitorsCount    int `json:"visitorsCount" bson:"visitors_count"`
	CallsCount       int `json:"callsCount" bson:"calls_count"`
	SocialMediaCount int `json:"socialMediaCount" bson:"social_media_count"`
	EntryCount       int `json:"entryCount" bson:"entry_count"`
	ExitCount        int `json:"exitCount" bson:"exit_count"`

	Needs          string `json:"needs" bson:"needs"`
	Notes          string `json:"notes" bson:"notes"`
	TasksCompleted string `json:"tasksCompleted" bson:"tasks_completed"`
	Issues         string `json:"issues" bson:"issues"`
	HandoverNotes  string `json:"handoverNotes" bson:"handover_notes"`

	// ProductivityScore is nil when the shift was not rated.
	ProductivityScore *float64 `json:"productivityScore,omitempty" bson:"productivity_score,omitempty"`

	DailyRevenueDetails string  `json:"dailyRevenueDetails" bson:"daily_revenue_details"`
	DailyRevenue        float64 `json:"dailyRevenue" bson:"daily_revenue"`
	TotalRevenue        float64 `json:"totalRevenue" bson:"total_revenue"`

	SubmittedBy string    `json:"submittedBy" bson:"submitted_by"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`

	// CreatedAt orders rows in relational backends; it is not exposed to clients.
	CreatedAt time.Time `json:"-" bson:"-" gorm:"index"`
}

// SameSlot reports whether both records occupy the same (employee, shift, date) slot.
func (r ShiftReport) SameSlot(other ShiftReport) bool {
	return r.EmployeeID == other.EmployeeID && r.Shift == other.Shift && r.Date == other.Date
}

// DailySummaryRow is the per-employee aggregate computed on every read.
type DailySummaryRow struct {
	EmployeeID          string   `json:"employeeId"`
	EmployeeName        string   `json:"employeeName"`
	TotalShifts         int      `json:"totalShifts"`
	TotalVisitors       int      `json:"totalVisitors"`
	TotalCalls          int      `json:"totalCalls"`
	TotalSocialMedia    int      `json:"totalSocialMedia"`
	TotalInteraction    int      `json:"totalInteraction"`
	TotalEntry          int      `json:"totalEntry"`
	TotalExit           int      `json:"totalExit"`
	TotalDailyRevenue   float64  `json:"totalDailyRevenue"`
	TotalRevenue        float64  `json:"totalRevenue"`
	ProductivityAverage *float64 `json:"productivityAverage"`
	Needs               []string `json:"needs"`
	Notes               []string `json:"notes"`
	Tasks               []string `json:"tasks"`
	Issues              []string `json:"issues"`
	HandoverNotes       []string `json:"handoverNotes"`
}

// ReportFilter narrows a report listing. Empty fields match everything.
// Date takes precedence over the From/To range.
type ReportFilter struct {
	Date       string
	From       string
	To         string
	EmployeeID string
	Shift      Shift
}

// Matches applies the filter to a single record.
func (f ReportFilter) Matches(r ShiftReport) bool {
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Shift != "" && r.Shift != f.Shift {
		return false
	}
	if f.Date != "" {
		return r.Date == f.Date
	}
	// YYYY-MM-DD compares lexicographically in calendar order.
	if f.From != "" && r.Date < f.From {
		return false
	}
	if f.To != "" && r.Date > f.To {
		return false
	}
	return true
}

// Label names the period covered by the filter, used for export file names.
func (f ReportFilter) Label() string {
	switch {
	case f.Date != "":
		return f.Date
	case f.From != "" && f.To != "":
		return f.From + "_" + f.To
	case f.From != "":
		return f.From + "_"
	case f.To != "":
		return "_" + f.To
	default:
		return "all"
	}
}
