package edit_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/pkg/ptr"
)

// UseCase use case для изменения резервации
type UseCase struct {
	reservationRepo  ReservationRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	notifications    NotificationSink
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger

	cancellationNoticeMinutes int
	virtualRoomBaseURL        string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	notifications NotificationSink,
	txManager TransactionManager,
	logger Logger,
	cancellationNoticeMinutes int,
	virtualRoomBaseURL string,
) *UseCase {
	if cancellationNoticeMinutes <= 0 {
		cancellationNoticeMinutes = domain.DefaultCancellationNoticeMinutes
	}

	return &UseCase{
		reservationRepo:           reservationRepo,
		availabilityRepo:          availabilityRepo,
		catalogRepo:               catalogRepo,
		notifications:             notifications,
		txManager:                 txManager,
		timeProvider:              &RealTimeProvider{},
		logger:                    logger,
		cancellationNoticeMinutes: cancellationNoticeMinutes,
		virtualRoomBaseURL:        virtualRoomBaseURL,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case изменения резервации
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditReservation: reservation=%d, actor=%d (%s)",
		req.ReservationID, req.Actor.ID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditReservation: validation failed: %v", err)
		return nil, err
	}

	// Переменные для пост-коммитных уведомлений
	var (
		result       *domain.Reservation
		tutorID      int64
		prevState    domain.ReservationState
		newlyVirtual bool
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем резервацию
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("EditReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("EditReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		prevState = res.State

		// 2.2. Получаем услугу (нужен ID тьютора)
		service, err := uc.catalogRepo.GetService(txCtx, res.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Error("EditReservation: service id=%d missing for reservation id=%d",
					res.ServiceID, res.ID)
				return fmt.Errorf("%w: service not found", ErrInternal)
			}
			uc.logger.Error("EditReservation: failed to get service id=%d: %v", res.ServiceID, err)
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		tutorID = service.TutorID

		// 2.3. Проверяем права: участник резервации или админ
		if !domain.Allowed(req.Actor, []int64{res.StudentID, service.TutorID}, domain.CapEditReservation) {
			uc.logger.Warn("EditReservation: actor id=%d may not edit reservation id=%d",
				req.Actor.ID, res.ID)
			return ErrForbidden
		}

		isStudent := !req.Actor.IsAdmin() && req.Actor.ID == res.StudentID
		isTutor := !req.Actor.IsAdmin() && req.Actor.ID == service.TutorID

		// 2.4. Ролевые ограничения на перенос: тьютор не меняет дату.
		// Интервал времени в пределах дня тьютор менять может —
		// перенос всё равно проходит проверки окон и конфликтов ниже
		if isTutor && req.Date != nil {
			uc.logger.Warn("EditReservation: tutor id=%d attempted to change date of reservation id=%d",
				req.Actor.ID, res.ID)
			return ErrTutorCannotReschedule
		}

		// 2.5. Проверяем смену состояния
		if req.State != nil {
			target := domain.ReservationState(*req.State)

			if target != res.State {
				if !res.CanTransitionTo(target) {
					uc.logger.Warn("EditReservation: invalid transition %s -> %s for reservation id=%d",
						res.State, target, res.ID)
					return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.State, target)
				}

				// Студент может только отменять, и только заранее
				if isStudent {
					if target != domain.StateCancelled {
						uc.logger.Warn("EditReservation: student id=%d attempted transition to %s", req.Actor.ID, target)
						return ErrStudentOnlyCancel
					}
					if err := uc.checkCancellationNotice(res); err != nil {
						return err
					}
				}

				res.State = target
			}
		}

		// 2.6. Перенос: пересчитываем покрытие окнами и конфликты
		if isReschedule(req) {
			date, start, end := effectiveSchedule(res, req)

			if !start.IsBefore(end) {
				return ErrInvalidTimeRange
			}

			dayOfWeek := domain.ISOWeekday(date)

			windows, err := uc.availabilityRepo.ListByTutorAndDay(txCtx, service.TutorID, dayOfWeek)
			if err != nil {
				uc.logger.Error("EditReservation: failed to list availability for tutor id=%d: %v",
					service.TutorID, err)
				return fmt.Errorf("%w: failed to list availability: %v", ErrInternal, err)
			}

			if !coveredByWindows(windows, start, end) {
				uc.logger.Warn("EditReservation: interval %s-%s not covered by tutor id=%d availability",
					start, end, service.TutorID)
				return ErrNoAvailability
			}

			// Конфликты проверяем без учёта самой резервации, с блокировкой (FOR UPDATE)
			existing, err := uc.reservationRepo.ListActiveByServicesAndDate(
				txCtx, []int64{res.ServiceID}, date, ptr.Ptr(res.ID))
			if err != nil {
				uc.logger.Error("EditReservation: failed to list reservations: %v", err)
				return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
			}

			if conflict := findConflict(existing, start, end); conflict != nil {
				uc.logger.Warn("EditReservation: interval %s-%s overlaps reservation id=%d",
					start, end, conflict.ID)
				return ErrReservationConflict
			}

			res.Date = date
			res.StartTime = start
			res.EndTime = end
		}

		// 2.7. Прочие поля
		if req.Notes != nil {
			res.Notes = req.Notes
		}

		if req.VirtualRoomURL != nil {
			res.VirtualRoomURL = req.VirtualRoomURL
		}

		// 2.8. Первый переход в confirmed для виртуальной услуги — генерируем
		// детерминированную ссылку на комнату, если явная не задана
		if prevState != domain.StateConfirmed && res.State == domain.StateConfirmed &&
			service.Modality.SupportsVirtual() && res.VirtualRoomURL == nil {
			res.VirtualRoomURL = ptr.Ptr(uc.virtualRoomURL(res))
			newlyVirtual = true
		}

		// 2.9. Сохраняем резервацию
		updated, err := uc.reservationRepo.Update(txCtx, res)
		if err != nil {
			// Exclusion constraint БД — последний рубеж против двойного бронирования
			if errors.Is(err, reservationRepo.ErrOverlapConstraint) {
				uc.logger.Warn("EditReservation: overlap constraint violation for reservation id=%d", res.ID)
				return ErrReservationConflict
			}
			uc.logger.Error("EditReservation: failed to update reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditReservation: successfully updated reservation id=%d, state=%s",
		result.ID, result.State)

	// 3. Уведомления (best-effort, ошибки не прерывают операцию)
	uc.notifyParticipants(ctx, req.Actor, tutorID, prevState, result, newlyVirtual)

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

// checkCancellationNotice проверяет, что до начала резервации осталось
// не меньше минимального срока отмены
func (uc *UseCase) checkCancellationNotice(res *domain.Reservation) error {
	startsAt, err := res.StartsAt()
	if err != nil {
		uc.logger.Error("EditReservation: failed to compute start of reservation id=%d: %v", res.ID, err)
		return fmt.Errorf("%w: failed to compute reservation start: %v", ErrInternal, err)
	}

	deadline := uc.timeProvider.Now().Add(time.Duration(uc.cancellationNoticeMinutes) * time.Minute)
	if startsAt.Before(deadline) {
		uc.logger.Warn("EditReservation: reservation id=%d starts at %s, too late to cancel",
			res.ID, startsAt.Format(time.RFC3339))
		return fmt.Errorf("%w: at least %d minutes notice required",
			ErrTooLateToCancel, uc.cancellationNoticeMinutes)
	}

	return nil
}

// virtualRoomURL выводит детерминированную ссылку на виртуальную комнату
// из ID и даты резервации
func (uc *UseCase) virtualRoomURL(res *domain.Reservation) string {
	name := fmt.Sprintf("reservation:%d:%s", res.ID, res.Date.Format(domain.DateFormat))
	room := uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
	return fmt.Sprintf("%s/%s", uc.virtualRoomBaseURL, room)
}

// notifyParticipants отправляет уведомления второй стороне резервации.
// Ошибки логируются и не возвращаются вызывающему.
func (uc *UseCase) notifyParticipants(
	ctx context.Context,
	actor domain.Actor,
	tutorID int64,
	prevState domain.ReservationState,
	res *domain.Reservation,
	newlyVirtual bool,
) {
	stateChanged := res.State != prevState

	switch {
	// Студент отменил — уведомляем тьютора
	case stateChanged && res.State == domain.StateCancelled && actor.ID == res.StudentID:
		message := fmt.Sprintf("Резервация на %s (%s-%s) отменена студентом",
			res.Date.Format(domain.DateFormat), res.StartTime, res.EndTime)
		uc.notify(ctx, tutorID, "Резервация отменена", message, res.ID)

	// Тьютор сменил состояние — уведомляем студента
	case stateChanged && actor.ID == tutorID:
		message := fmt.Sprintf("Состояние резервации на %s (%s-%s) изменено: %s",
			res.Date.Format(domain.DateFormat), res.StartTime, res.EndTime, res.State)
		if newlyVirtual && res.VirtualRoomURL != nil {
			message = fmt.Sprintf("%s. Ссылка на виртуальную комнату: %s", message, *res.VirtualRoomURL)
		}
		uc.notify(ctx, res.StudentID, "Резервация обновлена", message, res.ID)
	}
}

func (uc *UseCase) notify(ctx context.Context, userID int64, title, message string, reservationID int64) {
	_, err := uc.notifications.Create(
		ctx, userID, title, message, domain.NotificationReservation, ptr.Ptr(reservationID), nil)
	if err != nil {
		uc.logger.Warn("EditReservation: failed to notify user id=%d about reservation id=%d: %v",
			userID, reservationID, err)
	}
}
