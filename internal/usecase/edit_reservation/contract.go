package edit_reservation

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListActiveByServicesAndDate(ctx context.Context, serviceIDs []int64, date time.Time, excludeID *int64) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByTutorAndDay(ctx context.Context, tutorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// CatalogRepository интерфейс каталога услуг тьюторства
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.TutoringService, error)
}

// NotificationSink интерфейс создания уведомлений (fire-and-forget)
type NotificationSink interface {
	Create(ctx context.Context, userID int64, title, message string, typ domain.NotificationType, reservationID *int64, scheduledAt *time.Time) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
