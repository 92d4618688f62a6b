package edit_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/pkg/types"
)

type fakeReservationRepo struct {
	byID     map[int64]*domain.Reservation
	existing []*domain.Reservation
	updated  *domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (f *fakeReservationRepo) ListActiveByServicesAndDate(_ context.Context, _ []int64, _ time.Time, excludeID *int64) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range f.existing {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	clone := *res
	clone.UpdatedAt = time.Now()
	f.updated = &clone
	return &clone, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) ListByTutorAndDay(_ context.Context, _ int64, _ int) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.TutoringService
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.TutoringService, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeNotificationSink struct {
	calls []fakeNotification
}

type fakeNotification struct {
	userID  int64
	title   string
	message string
}

func (f *fakeNotificationSink) Create(_ context.Context, userID int64, title, message string, _ domain.NotificationType, _ *int64, _ *time.Time) (*domain.Notification, error) {
	f.calls = append(f.calls, fakeNotification{userID: userID, title: title, message: message})
	return &domain.Notification{ID: int64(len(f.calls))}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

const noticeMinutes = 120

var (
	student = domain.Actor{ID: 5, Role: domain.RoleStudent}
	tutor   = domain.Actor{ID: 1, Role: domain.RoleTutor}
	admin   = domain.Actor{ID: 99, Role: domain.RoleAdmin}
)

type fixture struct {
	uc            *UseCase
	reservations  *fakeReservationRepo
	notifications *fakeNotificationSink
}

func newFixture(modality domain.Modality, now time.Time) *fixture {
	reservations := &fakeReservationRepo{
		byID: map[int64]*domain.Reservation{
			10: {
				ID:        10,
				StudentID: 5,
				ServiceID: 100,
				Date:      monday,
				StartTime: "10:00",
				EndTime:   "11:00",
				State:     domain.StatePending,
			},
		},
	}
	notifications := &fakeNotificationSink{}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.TutoringService{
			100: {ID: 100, TutorID: 1, Modality: modality, Active: true},
		},
	}
	availability := &fakeAvailabilityRepo{
		windows: []*domain.AvailabilityWindow{
			{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		},
	}

	uc := NewUseCase(
		reservations,
		availability,
		catalog,
		notifications,
		fakeTxManager{},
		nopLogger{},
		noticeMinutes,
		"https://meet.example.com/rooms",
	).WithTimeProvider(fixedTimeProvider{now: now})

	return &fixture{uc: uc, reservations: reservations, notifications: notifications}
}

func statePtr(s domain.ReservationState) *string {
	v := string(s)
	return &v
}

func TestExecute_TutorConfirms(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		State:         statePtr(domain.StateConfirmed),
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.State)
	assert.Nil(t, resp.VirtualRoomURL)

	// Студент получает уведомление о смене состояния
	require.Len(t, f.notifications.calls, 1)
	assert.Equal(t, int64(5), f.notifications.calls[0].userID)
}

func TestExecute_ConfirmVirtualServiceGeneratesRoomURL(t *testing.T) {
	f := newFixture(domain.ModalityVirtual, monday)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		State:         statePtr(domain.StateConfirmed),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.VirtualRoomURL)
	assert.Contains(t, *resp.VirtualRoomURL, "https://meet.example.com/rooms/")

	// Ссылка детерминирована: повторное подтверждение дало бы тот же URL
	f2 := newFixture(domain.ModalityVirtual, monday)
	resp2, err := f2.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		State:         statePtr(domain.StateConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, *resp.VirtualRoomURL, *resp2.VirtualRoomURL)
}

func TestExecute_ExplicitRoomURLWins(t *testing.T) {
	f := newFixture(domain.ModalityVirtual, monday)

	url := "https://zoom.example.com/j/12345"
	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID:  10,
		Actor:          tutor,
		State:          statePtr(domain.StateConfirmed),
		VirtualRoomURL: &url,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.VirtualRoomURL)
	assert.Equal(t, url, *resp.VirtualRoomURL)
}

func TestExecute_StudentCancelsInAdvance(t *testing.T) {
	// Сейчас за 3 часа до начала, порог отмены 2 часа
	now := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	f := newFixture(domain.ModalityInPerson, now)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		State:         statePtr(domain.StateCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.State)

	// Тьютор получает уведомление об отмене
	require.Len(t, f.notifications.calls, 1)
	assert.Equal(t, int64(1), f.notifications.calls[0].userID)
}

func TestExecute_StudentCancelsTooLate(t *testing.T) {
	// Сейчас за 1 час до начала, порог отмены 2 часа
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(domain.ModalityInPerson, now)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		State:         statePtr(domain.StateCancelled),
	})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestExecute_CancellationNoticeBoundary(t *testing.T) {
	// Ровно за 2 часа до начала — отмена ещё допустима
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	f := newFixture(domain.ModalityInPerson, now)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		State:         statePtr(domain.StateCancelled),
	})
	assert.NoError(t, err)
}

func TestExecute_StudentMayOnlyCancel(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		State:         statePtr(domain.StateConfirmed),
	})
	assert.ErrorIs(t, err, ErrStudentOnlyCancel)
}

func TestExecute_TutorCannotChangeDate(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	nextMonday := monday.AddDate(0, 0, 7)
	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		Date:          &nextMonday,
	})
	assert.ErrorIs(t, err, ErrTutorCannotReschedule)
}

func TestExecute_TutorMayChangeTimeWithinDay(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	start := types.TimeString("12:00")
	end := types.TimeString("13:00")
	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		StartTime:     &start,
		EndTime:       &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", resp.StartTime.String())
}

func TestExecute_StudentReschedules(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	start := types.TimeString("12:00")
	end := types.TimeString("13:00")
	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		StartTime:     &start,
		EndTime:       &end,
	})
	require.NoError(t, err)

	assert.Equal(t, "12:00:00", resp.StartTime.String())
	assert.Equal(t, "13:00:00", resp.EndTime.String())
}

func TestExecute_RescheduleConflict(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)
	f.reservations.existing = []*domain.Reservation{
		{ID: 20, ServiceID: 100, Date: monday, StartTime: "12:30", EndTime: "13:30", State: domain.StateConfirmed},
	}

	start := types.TimeString("12:00")
	end := types.TimeString("13:00")
	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		StartTime:     &start,
		EndTime:       &end,
	})
	assert.ErrorIs(t, err, ErrReservationConflict)
}

func TestExecute_RescheduleIgnoresOwnInterval(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)
	// Сама резервация в списке активных не должна считаться конфликтом
	f.reservations.existing = []*domain.Reservation{
		{ID: 10, ServiceID: 100, Date: monday, StartTime: "10:00", EndTime: "11:00", State: domain.StatePending},
	}

	start := types.TimeString("10:30")
	end := types.TimeString("11:30")
	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		StartTime:     &start,
		EndTime:       &end,
	})
	assert.NoError(t, err)
}

func TestExecute_RescheduleOutsideAvailability(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	start := types.TimeString("18:00")
	end := types.TimeString("19:00")
	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         student,
		StartTime:     &start,
		EndTime:       &end,
	})
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestExecute_InvalidTransition(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         tutor,
		State:         statePtr(domain.StateCompleted),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_StrangerForbidden(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	stranger := domain.Actor{ID: 777, Role: domain.RoleStudent}
	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         stranger,
		State:         statePtr(domain.StateCancelled),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_AdminBypassesRoleRules(t *testing.T) {
	// Админ переносит и меняет состояние без ограничений студента и тьютора
	now := time.Date(2025, 3, 10, 9, 55, 0, 0, time.UTC)
	f := newFixture(domain.ModalityInPerson, now)

	start := types.TimeString("14:00")
	end := types.TimeString("15:00")
	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Actor:         admin,
		State:         statePtr(domain.StateCancelled),
		StartTime:     &start,
		EndTime:       &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.State)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(domain.ModalityInPerson, monday)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 999,
		Actor:         admin,
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
