package reports

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/pkg/revenue"
)

// maxCount bounds coerced counters; larger magnitudes are treated as garbage.
const maxCount = 1 << 31

// Submission is the raw, untrusted report payload. Numeric fields accept JSON
// numbers, numeric strings or booleans; anything else coerces to zero.
type Submission struct {
	EmployeeID string `json:"employeeId"`
	Shift      string `json:"shift"`
	Date       string `json:"date"`
	DayName    string `json:"dayName"`
	ShiftStart string `json:"shiftStart"`
	ShiftEnd   string `json:"shiftEnd"`

	VisitorsCount    any `json:"visitorsCount"`
	CallsCount       any `json:"callsCount"`
	SocialMediaCount any `json:"socialMediaCount"`
	EntryCount       any `json:"entryCount"`
	ExitCount        any `json:"exitCount"`

	Needs          string `json:"needs"`
	Notes          string `json:"notes"`
	TasksCompleted string `json:"tasksCompleted"`
	Issues         string `json:"issues"`
	HandoverNotes  string `json:"handoverNotes"`

	ProductivityScore any `json:"productivityScore"`

	DailyRevenueDetails string `json:"dailyRevenueDetails"`
	DailyRevenue        any    `json:"dailyRevenue"`
	TotalRevenue        any    `json:"totalRevenue"`
}

// Normalizer turns submissions into canonical records.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// NewNormalizer uses the wall clock and random UUIDs.
func NewNormalizer() Normalizer {
	return Normalizer{Now: time.Now, NewID: uuid.NewString}
}

// Normalize validates sub on behalf of caller and builds the record to store.
// existing must contain at least the stored reports for the submitted date; a
// record in the same slot donates its id. The boolean reports whether an
// existing record is being replaced.
func (n Normalizer) Normalize(sub Submission, caller models.Identity, employees []models.Employee, existing []models.ShiftReport) (models.ShiftReport, bool, error) {
	shiftValue := strings.TrimSpace(sub.Shift)
	date := strings.TrimSpace(sub.Date)
	if shiftValue == "" {
		return models.ShiftReport{}, false, fmt.Errorf("%w: missing required field shift", models.ErrValidation)
	}
	if date == "" {
		return models.ShiftReport{}, false, fmt.Errorf("%w: missing required field date", models.ErrValidation)
	}

	shift, ok := models.ParseShift(shiftValue)
	if !ok {
		return models.ShiftReport{}, false, fmt.Errorf("%w: unknown shift %q", models.ErrValidation, shiftValue)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.ShiftReport{}, false, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", models.ErrValidation, date)
	}

	targetID := caller.ID
	if caller.IsManager() && strings.TrimSpace(sub.EmployeeID) != "" {
		targetID = strings.TrimSpace(sub.EmployeeID)
	}
	employee, ok := models.FindEmployee(employees, targetID)
	if !ok {
		return models.ShiftReport{}, false, fmt.Errorf("%w: unknown employee %q", models.ErrValidation, targetID)
	}

	report := models.ShiftReport{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Shift:        shift,
		Date:         date,
		DayName:      firstNonEmpty(sub.DayName, models.DayName(date)),
		ShiftStart:   firstNonEmpty(sub.ShiftStart, shift.Window().Start),
		ShiftEnd:     firstNonEmpty(sub.ShiftEnd, shift.Window().End),

		VisitorsCount:    coerceCount(sub.VisitorsCount),
		CallsCount:       coerceCount(sub.CallsCount),
		SocialMediaCount: coerceCount(sub.SocialMediaCount),
		EntryCount:       coerceCount(sub.EntryCount),
		ExitCount:        coerceCount(sub.ExitCount),

		Needs:          sub.Needs,
		Notes:          sub.Notes,
		TasksCompleted: sub.TasksCompleted,
		Issues:         sub.Issues,
		HandoverNotes:  sub.HandoverNotes,

		ProductivityScore: coerceScore(sub.ProductivityScore),

		DailyRevenueDetails: sub.DailyRevenueDetails,
		TotalRevenue:        coerceAmount(sub.TotalRevenue),

		SubmittedBy: caller.ID,
		UpdatedAt:   n.Now().UTC(),
	}

	if strings.TrimSpace(sub.DailyRevenueDetails) != "" {
		report.DailyRevenue = revenue.Evaluate(sub.DailyRevenueDetails)
	} else {
		report.DailyRevenue = coerceAmount(sub.DailyRevenue)
	}

	replaced := false
	for _, r := range existing {
		if r.SameSlot(report) {
			report.ID = r.ID
			replaced = true
			break
		}
	}
	if !replaced {
		report.ID = n.NewID()
	}

	return report, replaced, nil
}

// toNumber mirrors loose numeric parsing: finite numbers and numeric strings
// parse, everything else reports false.
func toNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceCount(v any) int {
	f, ok := toNumber(v)
	if !ok || math.Abs(f) >= maxCount {
		return 0
	}
	return int(f)
}

func coerceAmount(v any) float64 {
	f, ok := toNumber(v)
	if !ok {
		return 0
	}
	return revenue.Round(f)
}

func coerceScore(v any) *float64 {
	f, ok := toNumber(v)
	if !ok {
		return nil
	}
	f = math.Min(100, math.Max(0, f))
	return &f
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
