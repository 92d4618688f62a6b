package domain

import "github.com/tutoweb/booking-service/pkg/types"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect: aStart < bEnd && bStart < aEnd.
// Intervals that merely touch at a boundary do not overlap.
//
// This is the single overlap rule for both availability-window
// de-duplication and reservation conflict detection.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// Contains reports whether [innerStart, innerEnd) lies entirely within
// [outerStart, outerEnd). Matching boundaries count as contained.
func Contains(outerStart, outerEnd, innerStart, innerEnd types.TimeString) bool {
	return !innerStart.IsBefore(outerStart) && !outerEnd.IsBefore(innerEnd)
}
