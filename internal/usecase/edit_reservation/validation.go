package edit_reservation

import (
	"fmt"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.Actor.ID <= 0 {
		return fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.State != nil && !domain.ValidReservationState(*req.State) {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *req.State)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isReschedule проверяет, меняет ли запрос дату или интервал времени
func isReschedule(req *Request) bool {
	return req.Date != nil || req.StartTime != nil || req.EndTime != nil
}

// effectiveSchedule возвращает дату и интервал резервации после применения запроса
func effectiveSchedule(res *domain.Reservation, req *Request) (time.Time, types.TimeString, types.TimeString) {
	date := res.Date
	start := res.StartTime
	end := res.EndTime

	if req.Date != nil {
		date = *req.Date
	}
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}

	return date, start, end
}

// coveredByWindows проверяет, что интервал [start, end) полностью покрыт
// хотя бы одним окном доступности
func coveredByWindows(windows []*domain.AvailabilityWindow, start, end types.TimeString) bool {
	for _, w := range windows {
		if w.Covers(start, end) {
			return true
		}
	}
	return false
}

// findConflict ищет активную резервацию, пересекающуюся с интервалом [start, end)
func findConflict(existing []*domain.Reservation, start, end types.TimeString) *domain.Reservation {
	for _, res := range existing {
		if !res.IsActive() {
			continue
		}
		if domain.Overlaps(start, end, res.StartTime, res.EndTime) {
			return res
		}
	}
	return nil
}
