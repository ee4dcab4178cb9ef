package store

import "time"

// Booking rules enforced by the scheduling engine.
const (
	// MinPatientGap is the minimum separation between two of a patient's
	// appointments on the same calendar day.
	MinPatientGap = 120 * time.Minute

	// MaxDoctorAppointmentsPerDay caps a doctor's non-cancelled
	// appointments per calendar day.
	MaxDoctorAppointmentsPerDay = 8
)

// DayBounds returns the [startOfDay, startOfNextDay) window containing t,
// evaluated in loc. Calendar days follow the facility's local midnight, not a
// rolling 24h window.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
