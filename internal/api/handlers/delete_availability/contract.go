package delete_availability

import (
	"context"

	"github.com/tutoweb/booking-service/internal/domain"
)

type AvailabilityService interface {
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
