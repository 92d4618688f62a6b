package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/pkg/ptr"
)

// UseCase use case для создания резервации
type UseCase struct {
	reservationRepo  ReservationRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	notifications    NotificationSink
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	notifications NotificationSink,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		notifications:    notifications,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute выполняет use case создания резервации
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: student=%d, service=%d, date=%s, time=%s-%s",
		req.StudentID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу тьюторства
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Проверяем, что услуга активна
	if !service.Active {
		uc.logger.Warn("CreateReservation: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Проверяем существование студента
	if _, err := uc.catalogRepo.GetUser(ctx, req.StudentID); err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: student id=%d not found", req.StudentID)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("CreateReservation: failed to get student id=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем покрытие окнами доступности тьютора на этот день недели
		dayOfWeek := domain.ISOWeekday(req.Date)

		windows, err := uc.availabilityRepo.ListByTutorAndDay(txCtx, service.TutorID, dayOfWeek)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list availability for tutor id=%d: %v", service.TutorID, err)
			return fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
		}

		if !coveredByWindows(windows, req) {
			uc.logger.Warn("CreateReservation: interval %s-%s not covered by tutor id=%d availability",
				req.StartTime, req.EndTime, service.TutorID)
			return ErrNoAvailability
		}

		// 5.2. Получаем активные резервации услуги на эту дату с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.ListActiveByServicesAndDate(txCtx, []int64{req.ServiceID}, req.Date, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 5.3. Проверяем пересечение с существующими резервациями
		if conflict := findConflict(existing, req); conflict != nil {
			uc.logger.Warn("CreateReservation: interval %s-%s overlaps reservation id=%d",
				req.StartTime, req.EndTime, conflict.ID)
			return ErrReservationConflict
		}

		// 5.4. Создаем резервацию
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			StudentID: req.StudentID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			State:     initialState(req),
			Notes:     req.Notes,
		})
		if err != nil {
			// Exclusion constraint БД — последний рубеж против двойного бронирования
			if errors.Is(err, reservationRepo.ErrOverlapConstraint) {
				uc.logger.Warn("CreateReservation: overlap constraint violation for service id=%d", req.ServiceID)
				return ErrReservationConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 6. Уведомляем тьютора (best-effort, ошибки не прерывают операцию)
	uc.notifyTutor(ctx, service.TutorID, result)

	// Конвертируем в response
	return &Response{
		ID:             result.ID,
		StudentID:      result.StudentID,
		ServiceID:      result.ServiceID,
		Date:           result.Date,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		State:          string(result.State),
		Notes:          result.Notes,
		VirtualRoomURL: result.VirtualRoomURL,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// notifyTutor отправляет тьютору уведомление о новой резервации.
// Ошибка логируется и не возвращается вызывающему.
func (uc *UseCase) notifyTutor(ctx context.Context, tutorID int64, res *domain.Reservation) {
	message := fmt.Sprintf("Новая резервация на %s с %s до %s",
		res.Date.Format(domain.DateFormat), res.StartTime, res.EndTime)

	_, err := uc.notifications.Create(
		ctx,
		tutorID,
		"Новая резервация",
		message,
		domain.NotificationReservation,
		ptr.Ptr(res.ID),
		nil,
	)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to notify tutor id=%d about reservation id=%d: %v",
			tutorID, res.ID, err)
	}
}
