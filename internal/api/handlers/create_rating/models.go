package create_rating

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	createRating "github.com/tutoweb/booking-service/internal/usecase/create_rating"
)

// CreateRatingRequest HTTP request model
type CreateRatingRequest struct {
	ReservationID int64   `json:"reservationId"`
	RaterID       int64   `json:"raterId"`
	RatedID       int64   `json:"ratedId"`
	Score         int     `json:"score"`
	Comment       *string `json:"comment,omitempty"`
}

// RatingResponse HTTP response model
type RatingResponse struct {
	ID            int64   `json:"id"`
	ReservationID int64   `json:"reservationId"`
	RaterID       int64   `json:"raterId"`
	RatedID       int64   `json:"ratedId"`
	Score         int     `json:"score"`
	Comment       *string `json:"comment,omitempty"`
	CreatedAt     string  `json:"createdAt"`

	TutorAverageRating float64 `json:"tutorAverageRating"`
	TutorReviewCount   int     `json:"tutorReviewCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRatingRequest) ToUseCaseRequest(actor domain.Actor) *createRating.Request {
	raterID := r.RaterID
	if raterID == 0 {
		raterID = actor.ID
	}

	return &createRating.Request{
		Actor:         actor,
		ReservationID: r.ReservationID,
		RaterID:       raterID,
		RatedID:       r.RatedID,
		Score:         r.Score,
		Comment:       r.Comment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRating.Response) *RatingResponse {
	return &RatingResponse{
		ID:            resp.ID,
		ReservationID: resp.ReservationID,
		RaterID:       resp.RaterID,
		RatedID:       resp.RatedID,
		Score:         resp.Score,
		Comment:       resp.Comment,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),

		TutorAverageRating: resp.TutorAverageRating,
		TutorReviewCount:   resp.TutorReviewCount,
	}
}
