package availability

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityWindow, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]*domain.AvailabilityWindow, error)
	ListByTutorAndDay(ctx context.Context, tutorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
	Update(ctx context.Context, w *domain.AvailabilityWindow) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	ListActiveByServicesAndDate(ctx context.Context, serviceIDs []int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
}

// CatalogRepository интерфейс каталога пользователей и услуг
type CatalogRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListActiveServiceIDsByTutor(ctx context.Context, tutorID int64) ([]int64, error)
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
