package get_free_slots

import (
	"context"
	"time"

	getFreeSlots "github.com/tutoweb/booking-service/internal/usecase/get_free_slots"
)

type GetFreeSlotsUseCase interface {
	ExecuteByTutor(ctx context.Context, tutorID int64, date time.Time) (*getFreeSlots.Response, error)
	ExecuteByService(ctx context.Context, serviceID int64, date time.Time) (*getFreeSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
