package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoweb/booking-service/internal/domain"
	availabilityRepo "github.com/tutoweb/booking-service/internal/infra/storage/availability"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	"github.com/tutoweb/booking-service/internal/service/availability/models"
	"github.com/tutoweb/booking-service/pkg/types"
)

type fakeAvailabilityRepo struct {
	byID   map[int64]*domain.AvailabilityWindow
	nextID int64
}

func newFakeAvailabilityRepo(windows ...*domain.AvailabilityWindow) *fakeAvailabilityRepo {
	repo := &fakeAvailabilityRepo{byID: map[int64]*domain.AvailabilityWindow{}}
	for _, w := range windows {
		repo.byID[w.ID] = w
		if w.ID > repo.nextID {
			repo.nextID = w.ID
		}
	}
	return repo
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	f.nextID++
	created := *w
	created.ID = f.nextID
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeAvailabilityRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityWindow, error) {
	w, ok := f.byID[id]
	if !ok {
		return nil, availabilityRepo.ErrWindowNotFound
	}
	clone := *w
	return &clone, nil
}

func (f *fakeAvailabilityRepo) ListByTutor(_ context.Context, tutorID int64) ([]*domain.AvailabilityWindow, error) {
	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range f.byID {
		if w.TutorID == tutorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListByTutorAndDay(_ context.Context, tutorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error) {
	out := make([]*domain.AvailabilityWindow, 0)
	for _, w := range f.byID {
		if w.TutorID == tutorID && w.DayOfWeek == dayOfWeek {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) Update(_ context.Context, w *domain.AvailabilityWindow) error {
	if _, ok := f.byID[w.ID]; !ok {
		return availabilityRepo.ErrWindowNotFound
	}
	clone := *w
	f.byID[w.ID] = &clone
	return nil
}

func (f *fakeAvailabilityRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return availabilityRepo.ErrWindowNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveByServicesAndDate(_ context.Context, _ []int64, _ time.Time, _ *int64) ([]*domain.Reservation, error) {
	return f.reservations, nil
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

func (f *fakeCatalogRepo) ListActiveServiceIDsByTutor(_ context.Context, tutorID int64) ([]int64, error) {
	ids := make([]int64, 0)
	for _, s := range f.services {
		if s.TutorID == tutorID && s.Active {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	tutorActor = domain.Actor{ID: 1, Role: domain.RoleTutor}
	adminActor = domain.Actor{ID: 99, Role: domain.RoleAdmin}
	monday     = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	svc          *Service
	windows      *fakeAvailabilityRepo
	reservations *fakeReservationRepo
}

func newFixture(windows ...*domain.AvailabilityWindow) *fixture {
	windowsRepo := newFakeAvailabilityRepo(windows...)
	reservations := &fakeReservationRepo{}
	catalog := &fakeCatalogRepo{
		users: map[int64]*domain.User{
			1: {ID: 1, Role: domain.RoleTutor},
		},
		services: map[int64]*domain.TutoringService{
			100: {ID: 100, TutorID: 1, Active: true},
		},
	}

	svc := NewService(windowsRepo, reservations, catalog, fakeTxManager{}, nopLogger{})
	return &fixture{svc: svc, windows: windowsRepo, reservations: reservations}
}

func TestCreate_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Create(context.Background(), tutorActor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 1, resp.DayOfWeek)
}

func TestCreate_OverlapRejected(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	_, err := f.svc.Create(context.Background(), tutorActor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 1,
		StartTime: "11:00",
		EndTime:   "14:00",
	})
	assert.ErrorIs(t, err, ErrWindowOverlap)
}

func TestCreate_AdjacentWindowsAllowed(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	_, err := f.svc.Create(context.Background(), tutorActor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 1,
		StartTime: "12:00",
		EndTime:   "15:00",
	})
	assert.NoError(t, err)
}

func TestCreate_SameIntervalDifferentDayAllowed(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	_, err := f.svc.Create(context.Background(), tutorActor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 2,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.NoError(t, err)
}

func TestCreate_AccessDenied(t *testing.T) {
	f := newFixture()

	otherTutor := domain.Actor{ID: 2, Role: domain.RoleTutor}
	_, err := f.svc.Create(context.Background(), otherTutor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_AdminAllowed(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), adminActor, &models.CreateWindowRequest{
		TutorID:   1,
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	assert.NoError(t, err)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		req  *models.CreateWindowRequest
	}{
		{
			name: "day out of range",
			req:  &models.CreateWindowRequest{TutorID: 1, DayOfWeek: 8, StartTime: "09:00", EndTime: "12:00"},
		},
		{
			name: "start after end",
			req:  &models.CreateWindowRequest{TutorID: 1, DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"},
		},
		{
			name: "start equals end",
			req:  &models.CreateWindowRequest{TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
		},
		{
			name: "missing time",
			req:  &models.CreateWindowRequest{TutorID: 1, DayOfWeek: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tutorActor, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_OverlapIgnoresSelf(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	// Сдвиг границ собственного окна не считается пересечением с самим собой
	end := types.TimeString("13:00")
	resp, err := f.svc.Update(context.Background(), tutorActor, 1, &models.UpdateWindowRequest{
		EndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", string(resp.EndTime))
}

func TestUpdate_OverlapWithOtherWindow(t *testing.T) {
	f := newFixture(
		&domain.AvailabilityWindow{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		&domain.AvailabilityWindow{ID: 2, TutorID: 1, DayOfWeek: 1, StartTime: "13:00", EndTime: "15:00"},
	)

	end := types.TimeString("14:00")
	_, err := f.svc.Update(context.Background(), tutorActor, 1, &models.UpdateWindowRequest{
		EndTime: &end,
	})
	assert.ErrorIs(t, err, ErrWindowOverlap)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture()

	end := types.TimeString("14:00")
	_, err := f.svc.Update(context.Background(), tutorActor, 999, &models.UpdateWindowRequest{
		EndTime: &end,
	})
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestGetByID(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	resp, err := f.svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TutorID)

	_, err = f.svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	require.NoError(t, f.svc.Delete(context.Background(), tutorActor, 1))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), tutorActor, 1), ErrWindowNotFound)
}

func TestDelete_AccessDenied(t *testing.T) {
	f := newFixture(&domain.AvailabilityWindow{
		ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00",
	})

	stranger := domain.Actor{ID: 7, Role: domain.RoleTutor}
	assert.ErrorIs(t, f.svc.Delete(context.Background(), stranger, 1), ErrAccessDenied)
}

func TestListAvailableWindows(t *testing.T) {
	f := newFixture(
		&domain.AvailabilityWindow{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		&domain.AvailabilityWindow{ID: 2, TutorID: 1, DayOfWeek: 1, StartTime: "14:00", EndTime: "16:00"},
	)
	// Первое окно занято резервацией, второе свободно
	f.reservations.reservations = []*domain.Reservation{
		{ID: 1, ServiceID: 100, Date: monday, StartTime: "09:00", EndTime: "10:00", State: domain.StateConfirmed},
	}

	resp, err := f.svc.ListAvailableWindows(context.Background(), 1, monday)
	require.NoError(t, err)

	require.Len(t, resp.Windows, 1)
	assert.Equal(t, int64(2), resp.Windows[0].ID)
}

func TestListAvailableWindows_CancelledReservationIgnored(t *testing.T) {
	f := newFixture(
		&domain.AvailabilityWindow{ID: 1, TutorID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	)
	f.reservations.reservations = []*domain.Reservation{
		{ID: 1, ServiceID: 100, Date: monday, StartTime: "09:00", EndTime: "10:00", State: domain.StateCancelled},
	}

	resp, err := f.svc.ListAvailableWindows(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Len(t, resp.Windows, 1)
}
