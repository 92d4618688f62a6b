package domain

import (
	"time"

	"github.com/tutoweb/booking-service/pkg/types"
)

// AvailabilityWindow represents a weekly recurring time range in which
// a tutor accepts bookings. DayOfWeek follows ISO 8601: Monday=1 .. Sunday=7.
type AvailabilityWindow struct {
	ID        int64
	TutorID   int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Covers reports whether the window fully contains [start, end)
func (w *AvailabilityWindow) Covers(start, end types.TimeString) bool {
	return Contains(w.StartTime, w.EndTime, start, end)
}

// ISOWeekday returns the ISO 8601 weekday of date (Monday=1 .. Sunday=7)
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
