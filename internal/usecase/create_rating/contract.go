package create_rating

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	GetByReservation(ctx context.Context, reservationID int64) (*domain.Rating, error)
	ListScoresByRated(ctx context.Context, ratedID int64) ([]int, error)
}

// PaymentRepository интерфейс репозитория платежей (только чтение)
type PaymentRepository interface {
	GetCompletedByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error)
}

// CatalogRepository интерфейс каталога пользователей и услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.TutoringService, error)
	UpdateTutorRating(ctx context.Context, tutorID int64, agg domain.RatingAggregate) error
}

// NotificationSink интерфейс создания уведомлений (fire-and-forget)
type NotificationSink interface {
	Create(ctx context.Context, userID int64, title, message string, typ domain.NotificationType, reservationID *int64, scheduledAt *time.Time) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
