package get_tutor_ratings

import (
	"context"

	"github.com/tutoweb/booking-service/internal/service/ratings/models"
)

type RatingService interface {
	ListByTutor(ctx context.Context, tutorID int64) (*models.RatingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
