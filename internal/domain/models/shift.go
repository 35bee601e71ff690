package models

import (
	"strings"
	"time"
)

// Shift enumerates the reception desk shift windows.
type Shift string

const (
	ShiftNight   Shift = "night"
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// ShiftWindow is the wall-clock span of a shift. Evening wraps past midnight.
type ShiftWindow struct {
	Start string
	End   string
}

var shiftWindows = map[Shift]ShiftWindow{
	ShiftNight:   {Start: "01:00", End: "09:00"},
	ShiftMorning: {Start: "09:00", End: "17:00"},
	ShiftEvening: {Start: "17:00", End: "01:00"},
}

// Shifts lists the supported shifts in the order they occur during a day.
func Shifts() []Shift {
	return []Shift{ShiftNight, ShiftMorning, ShiftEvening}
}

// ParseShift resolves user input to a known shift, ignoring case and padding.
func ParseShift(value string) (Shift, bool) {
	s := Shift(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := shiftWindows[s]; !ok {
		return "", false
	}
	return s, true
}

// Window returns the configured time span; unknown shifts yield an empty window.
func (s Shift) Window() ShiftWindow {
	return shiftWindows[s]
}

// Label renders the shift with its time span, e.g. "morning (09:00-17:00)".
func (s Shift) Label() string {
	w, ok := shiftWindows[s]
	if !ok {
		return string(s)
	}
	return string(s) + " (" + w.Start + "-" + w.End + ")"
}

// DayName returns the weekday name of a YYYY-MM-DD date, or "" when unparsable.
func DayName(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
