package reservations

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*domain.Reservation, error)
	ListByServices(ctx context.Context, serviceIDs []int64) ([]*domain.Reservation, error)
	ListActiveByServicesAndDate(ctx context.Context, serviceIDs []int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogRepository интерфейс каталога пользователей и услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.TutoringService, error)
	ListServiceIDsByTutor(ctx context.Context, tutorID int64) ([]int64, error)
}

// PaymentRepository интерфейс репозитория платежей (только чтение)
type PaymentRepository interface {
	GetCompletedByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error)
}

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	GetByReservation(ctx context.Context, reservationID int64) (*domain.Rating, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
