package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	paymentRepo "github.com/tutoweb/booking-service/internal/infra/storage/payment"
	ratingRepo "github.com/tutoweb/booking-service/internal/infra/storage/rating"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/internal/service/reservations/models"
)

// Service сервис для чтения и удаления резерваций.
// Создание и изменение живут в соответствующих use cases.
type Service struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	paymentRepo     PaymentRepository
	ratingRepo      RatingRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	paymentRepo PaymentRepository,
	ratingRepo RatingRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		paymentRepo:     paymentRepo,
		ratingRepo:      ratingRepo,
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
// Доступно участникам резервации и администраторам
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: reservation id=%d by user=%d", id, actor.ID)

	res, err := s.getReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	service, err := s.getService(ctx, res.ServiceID)
	if err != nil {
		return nil, err
	}

	if !domain.Allowed(actor, []int64{res.StudentID, service.TutorID}, domain.CapViewReservation) {
		s.logger.Warn("GetByID: user=%d may not view reservation id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// ListByStudent получает все резервации студента
// Доступно самому студенту и администраторам
func (s *Service) ListByStudent(ctx context.Context, actor domain.Actor, studentID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByStudent: student=%d by user=%d", studentID, actor.ID)

	if studentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if !domain.Allowed(actor, []int64{studentID}, domain.CapViewReservation) {
		s.logger.Warn("ListByStudent: user=%d may not view reservations of student=%d", actor.ID, studentID)
		return nil, ErrAccessDenied
	}

	reservations, err := s.reservationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("ListByStudent: repository error for student=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: ListByStudent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStudent: fetched %d reservations for student=%d", len(reservations), studentID)
	return models.FromDomainReservationList(reservations), nil
}

// ListByTutor получает все резервации по услугам тьютора
// Доступно самому тьютору и администраторам
func (s *Service) ListByTutor(ctx context.Context, actor domain.Actor, tutorID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByTutor: tutor=%d by user=%d", tutorID, actor.ID)

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if !domain.Allowed(actor, []int64{tutorID}, domain.CapViewReservation) {
		s.logger.Warn("ListByTutor: user=%d may not view reservations of tutor=%d", actor.ID, tutorID)
		return nil, ErrAccessDenied
	}

	serviceIDs, err := s.catalogRepo.ListServiceIDsByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("ListByTutor: failed to list services for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	if len(serviceIDs) == 0 {
		return models.FromDomainReservationList(nil), nil
	}

	reservations, err := s.reservationRepo.ListByServices(ctx, serviceIDs)
	if err != nil {
		s.logger.Error("ListByTutor: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: ListByTutor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTutor: fetched %d reservations for tutor=%d", len(reservations), tutorID)
	return models.FromDomainReservationList(reservations), nil
}

// ListForTutorOnDate получает неотменённые резервации тьютора на дату
// Доступно самому тьютору и администраторам
func (s *Service) ListForTutorOnDate(ctx context.Context, actor domain.Actor, tutorID int64, date time.Time) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForTutorOnDate: tutor=%d, date=%s by user=%d",
		tutorID, date.Format(domain.DateFormat), actor.ID)

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.Allowed(actor, []int64{tutorID}, domain.CapViewReservation) {
		s.logger.Warn("ListForTutorOnDate: user=%d may not view reservations of tutor=%d", actor.ID, tutorID)
		return nil, ErrAccessDenied
	}

	serviceIDs, err := s.catalogRepo.ListServiceIDsByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("ListForTutorOnDate: failed to list services for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	if len(serviceIDs) == 0 {
		return models.FromDomainReservationList(nil), nil
	}

	reservations, err := s.reservationRepo.ListActiveByServicesAndDate(ctx, serviceIDs, date, nil)
	if err != nil {
		s.logger.Error("ListForTutorOnDate: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: ListForTutorOnDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForTutorOnDate: fetched %d reservations for tutor=%d on %s",
		len(reservations), tutorID, date.Format(domain.DateFormat))
	return models.FromDomainReservationList(reservations), nil
}

// Delete удаляет резервацию
// Доступно студенту-владельцу и администраторам. Резервация с завершённым
// платежом или оценкой не удаляется.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: reservation id=%d by user=%d", id, actor.ID)

	// 1. Получаем резервацию
	res, err := s.getReservation(ctx, id)
	if err != nil {
		return err
	}

	// 2. Проверяем права доступа (студент-владелец либо админ)
	if !domain.Allowed(actor, []int64{res.StudentID}, domain.CapDeleteReservation) {
		s.logger.Warn("Delete: user=%d may not delete reservation id=%d", actor.ID, id)
		return ErrAccessDenied
	}

	// 3. Завершённый платёж блокирует удаление
	if _, err := s.paymentRepo.GetCompletedByReservation(ctx, id); err == nil {
		s.logger.Warn("Delete: reservation id=%d has a completed payment", id)
		return ErrDeleteRestricted
	} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("Delete: failed to check payment for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to check payment: %v", ErrInternal, err)
	}

	// 4. Оценка блокирует удаление
	if _, err := s.ratingRepo.GetByReservation(ctx, id); err == nil {
		s.logger.Warn("Delete: reservation id=%d has a rating", id)
		return ErrDeleteRestricted
	} else if !errors.Is(err, ratingRepo.ErrRatingNotFound) {
		s.logger.Error("Delete: failed to check rating for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to check rating: %v", ErrInternal, err)
	}

	// 5. Удаляем резервацию
	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("getReservation: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("getReservation: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return res, nil
}

func (s *Service) getService(ctx context.Context, id int64) (*domain.TutoringService, error) {
	service, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Error("getService: service id=%d not found", id)
			return nil, fmt.Errorf("%w: service not found", ErrInternal)
		}
		s.logger.Error("getService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}
