package ratings

import (
	"context"
	"errors"
	"fmt"

	ratingRepo "github.com/tutoweb/booking-service/internal/infra/storage/rating"
	"github.com/tutoweb/booking-service/internal/service/ratings/models"
)

// Service сервис для чтения оценок.
// Создание оценки живет в use case create_rating.
type Service struct {
	ratingRepo RatingRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса оценок
func NewService(ratingRepo RatingRepository, logger Logger) *Service {
	return &Service{
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// ListByTutor получает все оценки, полученные тьютором
// Публичный метод - доступен всем
func (s *Service) ListByTutor(ctx context.Context, tutorID int64) (*models.RatingListResponse, error) {
	s.logger.Info("ListByTutor: fetching ratings for tutor=%d", tutorID)

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	ratings, err := s.ratingRepo.ListByRated(ctx, tutorID)
	if err != nil {
		s.logger.Error("ListByTutor: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: ListByTutor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTutor: fetched %d ratings for tutor=%d", len(ratings), tutorID)
	return models.FromDomainRatingList(ratings), nil
}

// ListByStudent получает все оценки, оставленные студентом
func (s *Service) ListByStudent(ctx context.Context, studentID int64) (*models.RatingListResponse, error) {
	s.logger.Info("ListByStudent: fetching ratings by student=%d", studentID)

	if studentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	ratings, err := s.ratingRepo.ListByRater(ctx, studentID)
	if err != nil {
		s.logger.Error("ListByStudent: repository error for student=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: ListByStudent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStudent: fetched %d ratings by student=%d", len(ratings), studentID)
	return models.FromDomainRatingList(ratings), nil
}

// GetByReservation получает оценку резервации
func (s *Service) GetByReservation(ctx context.Context, reservationID int64) (*models.RatingResponse, error) {
	s.logger.Info("GetByReservation: fetching rating for reservation=%d", reservationID)

	if reservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	rating, err := s.ratingRepo.GetByReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrRatingNotFound) {
			s.logger.Warn("GetByReservation: reservation=%d has no rating", reservationID)
			return nil, ErrRatingNotFound
		}
		s.logger.Error("GetByReservation: repository error for reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetByReservation - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRating(rating), nil
}
