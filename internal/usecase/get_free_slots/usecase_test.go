package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveByServicesAndDate(_ context.Context, _ []int64, _ time.Time, _ *int64) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) ListByTutorAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

type fakeCatalogRepo struct {
	users    map[int64]*domain.User
	services map[int64]*domain.TutoringService
}

func (f *fakeCatalogRepo) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, catalogRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.TutoringService, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) ListActiveServiceIDsByTutor(_ context.Context, tutorID int64) ([]int64, error) {
	ids := make([]int64, 0)
	for _, s := range f.services {
		if s.TutorID == tutorID && s.Active {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// monday — понедельник, совпадает с окнами DayOfWeek=1 в тестах
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestUseCase(
	windows []*domain.AvailabilityWindow,
	reservations []*domain.Reservation,
	slotMinutes int,
) *UseCase {
	catalog := &fakeCatalogRepo{
		users: map[int64]*domain.User{
			1: {ID: 1, Role: domain.RoleTutor},
		},
		services: map[int64]*domain.TutoringService{
			100: {ID: 100, TutorID: 1, Active: true},
		},
	}
	return NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeAvailabilityRepo{windows: windows},
		catalog,
		nopLogger{},
		slotMinutes,
	)
}

func TestExecuteByTutor_ReservedSlotExcluded(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: 100, Date: monday, StartTime: "09:00", EndTime: "10:00", State: domain.StateConfirmed},
	}

	uc := newTestUseCase(windows, reservations, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "11:00:00", resp.Slots[0].EndTime.String())
}

func TestExecuteByTutor_CancelledReservationFreesSlot(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: 100, Date: monday, StartTime: "09:00", EndTime: "10:00", State: domain.StateCancelled},
	}

	uc := newTestUseCase(windows, reservations, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecuteByTutor_FinalSlotClippedToWindowEnd(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"},
	}

	uc := newTestUseCase(windows, nil, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "10:00:00", resp.Slots[0].EndTime.String())
	// Последний слот короче шага: обрезан до конца окна
	assert.Equal(t, "10:00:00", resp.Slots[1].StartTime.String())
	assert.Equal(t, "10:30:00", resp.Slots[1].EndTime.String())
}

func TestExecuteByTutor_WindowAdjacentToMidnight(t *testing.T) {
	// Шаг слота переваливает через полночь: генерация должна завершиться,
	// отдав единственный слот, обрезанный до конца окна
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "23:00", EndTime: "23:30"},
	}

	uc := newTestUseCase(windows, nil, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "23:00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "23:30:00", resp.Slots[0].EndTime.String())
}

func TestExecuteByTutor_WindowEndingAtLateEvening(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "22:00", EndTime: "23:59"},
	}

	uc := newTestUseCase(windows, nil, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "22:00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "23:00:00", resp.Slots[0].EndTime.String())
	assert.Equal(t, "23:00:00", resp.Slots[1].StartTime.String())
	assert.Equal(t, "23:59:00", resp.Slots[1].EndTime.String())
}

func TestExecuteByTutor_SlotsSortedAcrossWindows(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 2, TutorID: 1, DayOfWeek: 1, StartTime: "14:00", EndTime: "15:00"},
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}

	uc := newTestUseCase(windows, nil, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "14:00:00", resp.Slots[1].StartTime.String())
}

func TestExecuteByTutor_NoWindows(t *testing.T) {
	uc := newTestUseCase(nil, nil, 60)

	resp, err := uc.ExecuteByTutor(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteByTutor_TutorNotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil, 60)

	_, err := uc.ExecuteByTutor(context.Background(), 999, monday)
	assert.ErrorIs(t, err, ErrTutorNotFound)
}

func TestExecuteByService(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}

	uc := newTestUseCase(windows, nil, 60)

	resp, err := uc.ExecuteByService(context.Background(), 100, monday)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TutorID)
	assert.Len(t, resp.Slots, 2)
}

func TestExecuteByService_NotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil, 60)

	_, err := uc.ExecuteByService(context.Background(), 999, monday)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteByService_Inactive(t *testing.T) {
	uc := newTestUseCase(nil, nil, 60)
	catalog := uc.catalogRepo.(*fakeCatalogRepo)
	catalog.services[200] = &domain.TutoringService{ID: 200, TutorID: 1, Active: false}

	_, err := uc.ExecuteByService(context.Background(), 200, monday)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteByTutor_InvalidInput(t *testing.T) {
	uc := newTestUseCase(nil, nil, 60)

	_, err := uc.ExecuteByTutor(context.Background(), 0, monday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.ExecuteByTutor(context.Background(), 1, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
