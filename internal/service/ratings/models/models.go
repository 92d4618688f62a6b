package models

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// RatingResponse ответ с данными оценки
type RatingResponse struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationId"`
	RaterID       int64     `json:"raterId"`
	RatedID       int64     `json:"ratedId"`
	Score         int       `json:"score"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RatingListResponse ответ со списком оценок
type RatingListResponse struct {
	Ratings []RatingResponse `json:"ratings"`
}

// FromDomainRating конвертирует domain модель в DTO
func FromDomainRating(r *domain.Rating) *RatingResponse {
	if r == nil {
		return nil
	}

	return &RatingResponse{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		RaterID:       r.RaterID,
		RatedID:       r.RatedID,
		Score:         r.Score,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainRatingList конвертирует список domain моделей в DTO
func FromDomainRatingList(ratings []*domain.Rating) *RatingListResponse {
	resp := &RatingListResponse{
		Ratings: make([]RatingResponse, 0, len(ratings)),
	}

	for _, r := range ratings {
		if rr := FromDomainRating(r); rr != nil {
			resp.Ratings = append(resp.Ratings, *rr)
		}
	}

	return resp
}
