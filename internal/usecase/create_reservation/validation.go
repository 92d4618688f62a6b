package create_reservation

import (
	"fmt"

	"github.com/tutoweb/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что интервал времени указан
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	// Время начала должно быть строго раньше времени конца
	if !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
	}

	// Начальное состояние, если указано, должно быть известным
	if req.State != nil && !domain.ValidReservationState(*req.State) {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidInput, *req.State)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// initialState возвращает начальное состояние резервации.
// Если состояние не указано, резервация создаётся в состоянии pending.
func initialState(req *Request) domain.ReservationState {
	if req.State == nil {
		return domain.StatePending
	}
	return domain.ReservationState(*req.State)
}

// coveredByWindows проверяет, что интервал [start, end) полностью покрыт
// хотя бы одним окном доступности
func coveredByWindows(windows []*domain.AvailabilityWindow, req *Request) bool {
	for _, w := range windows {
		if w.Covers(req.StartTime, req.EndTime) {
			return true
		}
	}
	return false
}

// findConflict ищет активную резервацию, пересекающуюся с запрошенным интервалом
func findConflict(existing []*domain.Reservation, req *Request) *domain.Reservation {
	for _, res := range existing {
		if !res.IsActive() {
			continue
		}
		if domain.Overlaps(req.StartTime, req.EndTime, res.StartTime, res.EndTime) {
			return res
		}
	}
	return nil
}
