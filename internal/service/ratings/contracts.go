package ratings

import (
	"context"

	"github.com/tutoweb/booking-service/internal/domain"
)

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	GetByReservation(ctx context.Context, reservationID int64) (*domain.Rating, error)
	ListByRated(ctx context.Context, ratedID int64) ([]*domain.Rating, error)
	ListByRater(ctx context.Context, raterID int64) ([]*domain.Rating, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
