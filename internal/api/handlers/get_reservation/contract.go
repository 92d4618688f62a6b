package get_reservation

import (
	"context"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
