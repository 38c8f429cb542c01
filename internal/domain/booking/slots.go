package booking

import (
	"regexp"
	"time"
)

// ===============================
// Canonical daily slots
// ===============================

// SlotDef is one of the four fixed 3-hour calendar cells every studio has on
// a weekday.
type SlotDef struct {
	Number int
	Start  string
	End    string
}

func CanonicalSlots() []SlotDef {
	return []SlotDef{
		{Number: 1, Start: "08:00", End: "11:00"},
		{Number: 2, Start: "11:00", End: "14:00"},
		{Number: 3, Start: "14:00", End: "17:00"},
		{Number: 4, Start: "17:00", End: "20:00"},
	}
}

// Slot view status as reported to clients.
const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
	SlotBlocked   = "blocked"
)

// SlotView is a slot with its derived occupancy state. Occupants are exposed
// by initials only.
type SlotView struct {
	ID         uint   `json:"id"`
	SlotNumber int    `json:"slot_number"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	StudioID   uint   `json:"studio_id"`
	Status     string `json:"status"`
	Initials   string `json:"initials,omitempty"`
}

// ===============================
// Date rules
// ===============================

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate checks the strict YYYY-MM-DD lexical format and that the date
// actually exists.
func IsValidDate(date string) bool {
	if !dateRe.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
