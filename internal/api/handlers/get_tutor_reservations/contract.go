package get_tutor_reservations

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	ListByTutor(ctx context.Context, actor domain.Actor, tutorID int64) (*models.ReservationListResponse, error)
	ListForTutorOnDate(ctx context.Context, actor domain.Actor, tutorID int64, date time.Time) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
