package create_rating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	paymentRepo "github.com/tutoweb/booking-service/internal/infra/storage/payment"
	ratingRepo "github.com/tutoweb/booking-service/internal/infra/storage/rating"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	byID map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

type fakeRatingRepo struct {
	byReservation map[int64]*domain.Rating
	scores        []int
	nextID        int64
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if _, ok := f.byReservation[rating.ReservationID]; ok {
		return nil, ratingRepo.ErrDuplicateRating
	}
	f.nextID++
	created := *rating
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.byReservation[rating.ReservationID] = &created
	f.scores = append(f.scores, rating.Score)
	return &created, nil
}

func (f *fakeRatingRepo) GetByReservation(_ context.Context, reservationID int64) (*domain.Rating, error) {
	r, ok := f.byReservation[reservationID]
	if !ok {
		return nil, ratingRepo.ErrRatingNotFound
	}
	return r, nil
}

func (f *fakeRatingRepo) ListScoresByRated(_ context.Context, _ int64) ([]int, error) {
	return f.scores, nil
}

type fakePaymentRepo struct {
	completed map[int64]*domain.Payment
}

func (f *fakePaymentRepo) GetCompletedByReservation(_ context.Context, reservationID int64) (*domain.Payment, error) {
	p, ok := f.completed[reservationID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

type fakeCatalogRepo struct {
	services   map[int64]*domain.TutoringService
	aggregates map[int64]domain.RatingAggregate
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.TutoringService, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) UpdateTutorRating(_ context.Context, tutorID int64, agg domain.RatingAggregate) error {
	f.aggregates[tutorID] = agg
	return nil
}

type fakeNotificationSink struct {
	calls int
}

func (f *fakeNotificationSink) Create(_ context.Context, _ int64, _, _ string, _ domain.NotificationType, _ *int64, _ *time.Time) (*domain.Notification, error) {
	f.calls++
	return &domain.Notification{ID: int64(f.calls)}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var student = domain.Actor{ID: 5, Role: domain.RoleStudent}

type fixture struct {
	uc            *UseCase
	ratings       *fakeRatingRepo
	catalog       *fakeCatalogRepo
	notifications *fakeNotificationSink
}

func newFixture() *fixture {
	reservations := &fakeReservationRepo{
		byID: map[int64]*domain.Reservation{
			10: {ID: 10, StudentID: 5, ServiceID: 100, State: domain.StateCompleted},
			11: {ID: 11, StudentID: 5, ServiceID: 100, State: domain.StateConfirmed},
			12: {ID: 12, StudentID: 5, ServiceID: 100, State: domain.StateCompleted},
		},
	}
	ratings := &fakeRatingRepo{byReservation: map[int64]*domain.Rating{}}
	payments := &fakePaymentRepo{
		completed: map[int64]*domain.Payment{
			10: {ID: 1, ReservationID: 10, State: domain.PaymentCompleted},
			11: {ID: 2, ReservationID: 11, State: domain.PaymentCompleted},
		},
	}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.TutoringService{
			100: {ID: 100, TutorID: 1, Active: true},
		},
		aggregates: map[int64]domain.RatingAggregate{},
	}
	notifications := &fakeNotificationSink{}

	uc := NewUseCase(reservations, ratings, payments, catalog, notifications, fakeTxManager{}, nopLogger{})

	return &fixture{uc: uc, ratings: ratings, catalog: catalog, notifications: notifications}
}

func validRequest() *Request {
	return &Request{
		Actor:         student,
		ReservationID: 10,
		RaterID:       5,
		RatedID:       1,
		Score:         5,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Score)
	assert.Equal(t, float64(5), resp.TutorAverageRating)
	assert.Equal(t, 1, resp.TutorReviewCount)

	// Агрегат тьютора пересчитан в той же операции
	agg, ok := f.catalog.aggregates[1]
	require.True(t, ok)
	assert.Equal(t, float64(5), agg.Average)

	assert.Equal(t, 1, f.notifications.calls)
}

func TestExecute_AggregateRecomputedOverAllScores(t *testing.T) {
	f := newFixture()
	f.ratings.scores = []int{4, 4} // оценки по другим резервациям

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 4.33, resp.TutorAverageRating)
	assert.Equal(t, 3, resp.TutorReviewCount)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ReservationID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ReservationNotCompleted(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ReservationID = 11

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReservationNotCompleted)
}

func TestExecute_NoCompletedPayment(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ReservationID = 12

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPaymentRequired)
}

func TestExecute_RaterMustMatchActor(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.RaterID = 6

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_RaterMustBeReservationStudent(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Actor = domain.Actor{ID: 6, Role: domain.RoleStudent}
	req.RaterID = 6

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_RatedMustBeServiceTutor(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.RatedID = 2

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRated)
}

func TestExecute_AlreadyRated(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyRated)
}

func TestExecute_InvalidScore(t *testing.T) {
	f := newFixture()

	for _, score := range []int{0, -1, 6} {
		req := validRequest()
		req.Score = score

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidScore, "score %d", score)
	}
}
