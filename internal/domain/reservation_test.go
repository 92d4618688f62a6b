package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_CanTransitionTo(t *testing.T) {
	states := []ReservationState{StatePending, StateConfirmed, StateCompleted, StateCancelled}

	allowed := map[ReservationState]map[ReservationState]bool{
		StatePending: {
			StateConfirmed: true,
			StateCancelled: true,
		},
		StateConfirmed: {
			StateCompleted: true,
			StateCancelled: true,
		},
		StateCompleted: {},
		StateCancelled: {},
	}

	for _, from := range states {
		for _, to := range states {
			res := &Reservation{State: from}
			got := res.CanTransitionTo(to)
			assert.Equal(t, allowed[from][to], got, "%s -> %s", from, to)
		}
	}
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{State: StatePending}).IsActive())
	assert.True(t, (&Reservation{State: StateConfirmed}).IsActive())
	assert.True(t, (&Reservation{State: StateCompleted}).IsActive())
	assert.False(t, (&Reservation{State: StateCancelled}).IsActive())
}

func TestReservation_IsTerminal(t *testing.T) {
	assert.False(t, (&Reservation{State: StatePending}).IsTerminal())
	assert.False(t, (&Reservation{State: StateConfirmed}).IsTerminal())
	assert.True(t, (&Reservation{State: StateCompleted}).IsTerminal())
	assert.True(t, (&Reservation{State: StateCancelled}).IsTerminal())
}

func TestReservation_StartsAt(t *testing.T) {
	res := &Reservation{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "14:30",
	}

	startsAt, err := res.StartsAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), startsAt)
}

func TestValidReservationState(t *testing.T) {
	assert.True(t, ValidReservationState("pending"))
	assert.True(t, ValidReservationState("confirmed"))
	assert.True(t, ValidReservationState("completed"))
	assert.True(t, ValidReservationState("cancelled"))
	assert.False(t, ValidReservationState("archived"))
	assert.False(t, ValidReservationState(""))
	assert.False(t, ValidReservationState("Pending"))
}
