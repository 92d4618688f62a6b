package create_availability

import (
	"context"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/availability/models"
)

type AvailabilityService interface {
	Create(ctx context.Context, actor domain.Actor, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
