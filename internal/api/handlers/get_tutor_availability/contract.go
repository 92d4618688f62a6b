package get_tutor_availability

import (
	"context"
	"time"

	"github.com/tutoweb/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	ListByTutor(ctx context.Context, tutorID int64) (*models.WindowListResponse, error)
	ListAvailableWindows(ctx context.Context, tutorID int64, date time.Time) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
