package create_reservation

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
	existing []*domain.Reservation
	created  *domain.Reservation
	nextID   int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

func (f *fakeReservationRepo) ListActiveByServicesAndDate(_ context.Context, _ []int64, _ time.Time, _ *int64) ([]*domain.Reservation, error) {
	return f.existing, nil
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

type fakeNotificationSink struct {
	calls []fakeNotification
}

type fakeNotification struct {
	userID int64
	title  string
	typ    domain.NotificationType
}

func (f *fakeNotificationSink) Create(_ context.Context, userID int64, title, _ string, typ domain.NotificationType, _ *int64, _ *time.Time) (*domain.Notification, error) {
	f.calls = append(f.calls, fakeNotification{userID: userID, title: title, typ: typ})
	return &domain.Notification{ID: int64(len(f.calls))}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc            *UseCase
	reservations  *fakeReservationRepo
	notifications *fakeNotificationSink
}

func newFixture(windows []*domain.AvailabilityWindow, existing []*domain.Reservation) *fixture {
	reservations := &fakeReservationRepo{existing: existing}
	notifications := &fakeNotificationSink{}
	catalog := &fakeCatalogRepo{
		users: map[int64]*domain.User{
			5: {ID: 5, Role: domain.RoleStudent},
		},
		services: map[int64]*domain.TutoringService{
			100: {ID: 100, TutorID: 1, Active: true},
			200: {ID: 200, TutorID: 1, Active: false},
		},
	}

	uc := NewUseCase(
		reservations,
		&fakeAvailabilityRepo{windows: windows},
		catalog,
		notifications,
		fakeTxManager{},
		nopLogger{},
	)

	return &fixture{uc: uc, reservations: reservations, notifications: notifications}
}

func validRequest() *Request {
	return &Request{
		StudentID: 5,
		ServiceID: 100,
		Date:      monday,
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func mondayWindow() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.State)
	assert.Equal(t, int64(5), resp.StudentID)

	// Тьютор получает уведомление о новой резервации
	require.Len(t, f.notifications.calls, 1)
	assert.Equal(t, int64(1), f.notifications.calls[0].userID)
	assert.Equal(t, domain.NotificationReservation, f.notifications.calls[0].typ)
}

func TestExecute_ExplicitInitialState(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	req := validRequest()
	state := "confirmed"
	req.State = &state

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.State)
}

func TestExecute_ConflictWithExistingReservation(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 7, ServiceID: 100, Date: monday, StartTime: "10:30", EndTime: "11:30", State: domain.StateConfirmed},
	}
	f := newFixture(mondayWindow(), existing)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrReservationConflict)
	assert.Empty(t, f.notifications.calls)
}

func TestExecute_AdjacentReservationDoesNotConflict(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 7, ServiceID: 100, Date: monday, StartTime: "11:00", EndTime: "12:00", State: domain.StateConfirmed},
	}
	f := newFixture(mondayWindow(), existing)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_CancelledReservationIgnored(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 7, ServiceID: 100, Date: monday, StartTime: "10:00", EndTime: "11:00", State: domain.StateCancelled},
	}
	f := newFixture(mondayWindow(), existing)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_NoAvailability(t *testing.T) {
	// Окно не покрывает запрошенный интервал целиком
	windows := []*domain.AvailabilityWindow{
		{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"},
	}
	f := newFixture(windows, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	req := validRequest()
	req.ServiceID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ServiceInactive(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	req := validRequest()
	req.ServiceID = 200

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecute_StudentNotFound(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	req := validRequest()
	req.StudentID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	f := newFixture(mondayWindow(), nil)

	tests := []struct {
		name      string
		mutate    func(req *Request)
		expectErr error
	}{
		{
			name:      "start equals end",
			mutate:    func(req *Request) { req.StartTime = "11:00" },
			expectErr: ErrInvalidTimeRange,
		},
		{
			name:      "start after end",
			mutate:    func(req *Request) { req.StartTime = "12:00" },
			expectErr: ErrInvalidTimeRange,
		},
		{
			name:      "zero student id",
			mutate:    func(req *Request) { req.StudentID = 0 },
			expectErr: ErrInvalidInput,
		},
		{
			name:      "unknown state",
			mutate:    func(req *Request) { s := "archived"; req.State = &s },
			expectErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}
