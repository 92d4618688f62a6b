package create_rating

import (
	"context"

	createRating "github.com/tutoweb/booking-service/internal/usecase/create_rating"
)

type CreateRatingUseCase interface {
	Execute(ctx context.Context, req *createRating.Request) (*createRating.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
