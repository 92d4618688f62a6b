package create_rating

import (
	"fmt"

	"github.com/tutoweb/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.RaterID <= 0 {
		return fmt.Errorf("%w: raterID must be positive", ErrInvalidInput)
	}

	if req.RatedID <= 0 {
		return fmt.Errorf("%w: ratedID must be positive", ErrInvalidInput)
	}

	if !domain.ValidScore(req.Score) {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, req.Score)
	}

	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}
