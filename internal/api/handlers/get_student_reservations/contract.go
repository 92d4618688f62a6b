package get_student_reservations

import (
	"context"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	ListByStudent(ctx context.Context, actor domain.Actor, studentID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
