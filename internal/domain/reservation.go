package domain

import (
	"time"

	"github.com/tutoweb/booking-service/pkg/types"
)

// ReservationState represents the lifecycle state of a reservation
type ReservationState string

const (
	StatePending   ReservationState = "pending"
	StateConfirmed ReservationState = "confirmed"
	StateCompleted ReservationState = "completed"
	StateCancelled ReservationState = "cancelled"
)

// Reservation represents a booked time range for a tutoring service
type Reservation struct {
	ID             int64
	StudentID      int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	State          ReservationState
	Notes          *string
	VirtualRoomURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its time range.
// Cancelled reservations free the slot; completed ones are in the past but
// keep it occupied for the conflict scan on their date.
func (r *Reservation) IsActive() bool {
	return r.State != StateCancelled
}

// IsTerminal returns true if the reservation can no longer change state
func (r *Reservation) IsTerminal() bool {
	return r.State == StateCompleted || r.State == StateCancelled
}

// CanTransitionTo reports whether the state machine allows moving to target:
// pending -> {confirmed, cancelled}, confirmed -> {completed, cancelled}
func (r *Reservation) CanTransitionTo(target ReservationState) bool {
	switch r.State {
	case StatePending:
		return target == StateConfirmed || target == StateCancelled
	case StateConfirmed:
		return target == StateCompleted || target == StateCancelled
	default:
		return false
	}
}

// StartsAt returns the absolute start instant of the reservation
func (r *Reservation) StartsAt() (time.Time, error) {
	return r.StartTime.At(r.Date)
}

// ValidReservationState reports whether s names a known state
func ValidReservationState(s string) bool {
	switch ReservationState(s) {
	case StatePending, StateConfirmed, StateCompleted, StateCancelled:
		return true
	}
	return false
}

// ActiveStates список состояний, занимающих временной интервал.
// Используется в проверке конфликтов бронирований.
var ActiveStates = []ReservationState{
	StatePending,
	StateConfirmed,
	StateCompleted,
}
