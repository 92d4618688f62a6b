package create_rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	paymentRepo "github.com/tutoweb/booking-service/internal/infra/storage/payment"
	ratingRepo "github.com/tutoweb/booking-service/internal/infra/storage/rating"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/pkg/ptr"
)

// UseCase use case для создания оценки тьютора
type UseCase struct {
	reservationRepo ReservationRepository
	ratingRepo      RatingRepository
	paymentRepo     PaymentRepository
	catalogRepo     CatalogRepository
	notifications   NotificationSink
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	ratingRepo RatingRepository,
	paymentRepo PaymentRepository,
	catalogRepo CatalogRepository,
	notifications NotificationSink,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		ratingRepo:      ratingRepo,
		paymentRepo:     paymentRepo,
		catalogRepo:     catalogRepo,
		notifications:   notifications,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case создания оценки.
// Оценка и пересчёт агрегата тьютора выполняются в одной сериализуемой
// транзакции, чтобы агрегат не разошелся с фактическим списком оценок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRating: reservation=%d, rater=%d, rated=%d, score=%d",
		req.ReservationID, req.RaterID, req.RatedID, req.Score)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRating: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем резервацию
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CreateRating: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CreateRating: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Оценивать можно только завершённую резервацию
	if reservation.State != domain.StateCompleted {
		uc.logger.Warn("CreateRating: reservation id=%d is in state %s", reservation.ID, reservation.State)
		return nil, ErrReservationNotCompleted
	}

	// 4. Должен существовать завершённый платёж
	if _, err := uc.paymentRepo.GetCompletedByReservation(ctx, req.ReservationID); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			uc.logger.Warn("CreateRating: reservation id=%d has no completed payment", req.ReservationID)
			return nil, ErrPaymentRequired
		}
		uc.logger.Error("CreateRating: failed to get payment for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
	}

	// 5. Оценку оставляет сам студент резервации
	if req.RaterID != req.Actor.ID {
		uc.logger.Warn("CreateRating: rater id=%d does not match actor id=%d", req.RaterID, req.Actor.ID)
		return nil, ErrForbidden
	}

	if req.RaterID != reservation.StudentID {
		uc.logger.Warn("CreateRating: rater id=%d is not the student of reservation id=%d",
			req.RaterID, reservation.ID)
		return nil, ErrForbidden
	}

	// 6. Оцениваемый должен быть тьютором услуги резервации
	service, err := uc.catalogRepo.GetService(ctx, reservation.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Error("CreateRating: service id=%d missing for reservation id=%d",
				reservation.ServiceID, reservation.ID)
			return nil, fmt.Errorf("%w: service not found", ErrInternal)
		}
		uc.logger.Error("CreateRating: failed to get service id=%d: %v", reservation.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if req.RatedID != service.TutorID {
		uc.logger.Warn("CreateRating: rated id=%d is not the tutor id=%d of service id=%d",
			req.RatedID, service.TutorID, service.ID)
		return nil, ErrInvalidRated
	}

	// Переменные для хранения результата
	var (
		result *domain.Rating
		agg    domain.RatingAggregate
	)

	// 7. Создаем оценку и пересчитываем агрегат в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Проверяем, что резервация еще не оценена
		if _, err := uc.ratingRepo.GetByReservation(txCtx, req.ReservationID); err == nil {
			uc.logger.Warn("CreateRating: reservation id=%d already rated", req.ReservationID)
			return ErrAlreadyRated
		} else if !errors.Is(err, ratingRepo.ErrRatingNotFound) {
			uc.logger.Error("CreateRating: failed to check existing rating: %v", err)
			return fmt.Errorf("%w: failed to check existing rating: %v", ErrInternal, err)
		}

		// 7.2. Создаем оценку
		created, err := uc.ratingRepo.Create(txCtx, &domain.Rating{
			ReservationID: req.ReservationID,
			RaterID:       req.RaterID,
			RatedID:       req.RatedID,
			Score:         req.Score,
			Comment:       req.Comment,
		})
		if err != nil {
			// Уникальный индекс БД — последний рубеж против двойной оценки
			if errors.Is(err, ratingRepo.ErrDuplicateRating) {
				uc.logger.Warn("CreateRating: duplicate rating for reservation id=%d", req.ReservationID)
				return ErrAlreadyRated
			}
			uc.logger.Error("CreateRating: failed to create rating: %v", err)
			return fmt.Errorf("%w: failed to create rating: %v", ErrInternal, err)
		}

		// 7.3. Полный пересчёт агрегата тьютора по всем его оценкам
		scores, err := uc.ratingRepo.ListScoresByRated(txCtx, req.RatedID)
		if err != nil {
			uc.logger.Error("CreateRating: failed to list scores for tutor id=%d: %v", req.RatedID, err)
			return fmt.Errorf("%w: failed to list scores: %v", ErrInternal, err)
		}

		agg = domain.AggregateScores(scores)

		if err := uc.catalogRepo.UpdateTutorRating(txCtx, req.RatedID, agg); err != nil {
			uc.logger.Error("CreateRating: failed to update tutor id=%d aggregate: %v", req.RatedID, err)
			return fmt.Errorf("%w: failed to update tutor rating: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRating: created rating id=%d, tutor id=%d average=%.2f count=%d",
		result.ID, req.RatedID, agg.Average, agg.ReviewCount)

	// 8. Уведомляем тьютора (best-effort, ошибки не прерывают операцию)
	uc.notifyTutor(ctx, req.RatedID, result)

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		ReservationID: result.ReservationID,
		RaterID:       result.RaterID,
		RatedID:       result.RatedID,
		Score:         result.Score,
		Comment:       result.Comment,
		CreatedAt:     result.CreatedAt,

		TutorAverageRating: agg.Average,
		TutorReviewCount:   agg.ReviewCount,
	}, nil
}

// notifyTutor отправляет тьютору уведомление о новой оценке.
// Ошибка логируется и не возвращается вызывающему.
func (uc *UseCase) notifyTutor(ctx context.Context, tutorID int64, rating *domain.Rating) {
	message := fmt.Sprintf("Вы получили новую оценку: %d из %d", rating.Score, domain.MaxScore)

	_, err := uc.notifications.Create(
		ctx, tutorID, "Новая оценка", message,
		domain.NotificationSystem, ptr.Ptr(rating.ReservationID), nil)
	if err != nil {
		uc.logger.Warn("CreateRating: failed to notify tutor id=%d about rating id=%d: %v",
			tutorID, rating.ID, err)
	}
}
