package get_free_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
)

// UseCase use case для получения свободных слотов тьютора
type UseCase struct {
	reservationRepo  ReservationRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logger           Logger

	slotDurationMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logger Logger,
	slotDurationMinutes int,
) *UseCase {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}

	return &UseCase{
		reservationRepo:     reservationRepo,
		availabilityRepo:    availabilityRepo,
		catalogRepo:         catalogRepo,
		logger:              logger,
		slotDurationMinutes: slotDurationMinutes,
	}
}

// ExecuteByTutor возвращает свободные слоты тьютора на указанную дату
func (uc *UseCase) ExecuteByTutor(ctx context.Context, tutorID int64, date time.Time) (*Response, error) {
	uc.logger.Info("GetFreeSlots: tutor=%d, date=%s", tutorID, date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateInput(tutorID, date); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование тьютора
	if _, err := uc.catalogRepo.GetUser(ctx, tutorID); err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) {
			uc.logger.Warn("GetFreeSlots: tutor id=%d not found", tutorID)
			return nil, ErrTutorNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get tutor id=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	return uc.compute(ctx, tutorID, date)
}

// ExecuteByService возвращает свободные слоты тьютора услуги на указанную дату
func (uc *UseCase) ExecuteByService(ctx context.Context, serviceID int64, date time.Time) (*Response, error) {
	uc.logger.Info("GetFreeSlots: service=%d, date=%s", serviceID, date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateInput(serviceID, date); err != nil {
		uc.logger.Warn("GetFreeSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и проверяем, что она активна
	service, err := uc.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetFreeSlots: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetFreeSlots: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("GetFreeSlots: service id=%d is not active", serviceID)
		return nil, ErrServiceInactive
	}

	return uc.compute(ctx, service.TutorID, date)
}

// compute строит список свободных слотов по окнам тьютора и его
// неотменённым резервациям на дату. Резервации собираются по всем
// активным услугам тьютора: занятое время занято независимо от того,
// по какой услуге оно забронировано.
func (uc *UseCase) compute(ctx context.Context, tutorID int64, date time.Time) (*Response, error) {
	dayOfWeek := domain.ISOWeekday(date)

	// Окна доступности на этот день недели
	windows, err := uc.availabilityRepo.ListByTutorAndDay(ctx, tutorID, dayOfWeek)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to list availability for tutor id=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		uc.logger.Info("GetFreeSlots: tutor id=%d has no availability on day %d", tutorID, dayOfWeek)
		return &Response{TutorID: tutorID, Date: date, Slots: []Slot{}}, nil
	}

	// Активные резервации по всем услугам тьютора на эту дату
	serviceIDs, err := uc.catalogRepo.ListActiveServiceIDsByTutor(ctx, tutorID)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to list services for tutor id=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	reservations := make([]*domain.Reservation, 0)
	if len(serviceIDs) > 0 {
		reservations, err = uc.reservationRepo.ListActiveByServicesAndDate(ctx, serviceIDs, date, nil)
		if err != nil {
			uc.logger.Error("GetFreeSlots: failed to list reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
	}

	slots, err := generateSlots(windows, uc.slotDurationMinutes, reservations)
	if err != nil {
		uc.logger.Error("GetFreeSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetFreeSlots: tutor id=%d has %d free slots on %s",
		tutorID, len(slots), date.Format(domain.DateFormat))

	return &Response{TutorID: tutorID, Date: date, Slots: slots}, nil
}

// validateInput валидирует ID и дату запроса
func validateInput(id int64, date time.Time) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
