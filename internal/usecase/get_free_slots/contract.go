package get_free_slots

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	ListActiveByServicesAndDate(ctx context.Context, serviceIDs []int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByTutorAndDay(ctx context.Context, tutorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// CatalogRepository интерфейс каталога пользователей и услуг
type CatalogRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetService(ctx context.Context, id int64) (*domain.TutoringService, error)
	ListActiveServiceIDsByTutor(ctx context.Context, tutorID int64) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
