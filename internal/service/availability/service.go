package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	availabilityRepo "github.com/tutoweb/booking-service/internal/infra/storage/availability"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	"github.com/tutoweb/booking-service/internal/service/availability/models"
	"github.com/tutoweb/booking-service/pkg/types"
)

// Service сервис для управления окнами доступности тьюторов
type Service struct {
	availabilityRepo AvailabilityRepository
	reservationRepo  ReservationRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		reservationRepo:  reservationRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Create создает новое окно доступности
// Доступно владельцу-тьютору и администраторам
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: window for tutor=%d, day=%d, %s-%s by user=%d",
		req.TutorID, req.DayOfWeek, req.StartTime, req.EndTime, actor.ID)

	// 1. Валидируем входные данные
	if err := validateWindowData(req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (сам тьютор либо админ)
	if !domain.Allowed(actor, []int64{req.TutorID}, domain.CapManageAvailability) {
		s.logger.Warn("Create: user=%d may not manage availability of tutor=%d", actor.ID, req.TutorID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем существование тьютора
	if _, err := s.catalogRepo.GetUser(ctx, req.TutorID); err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) {
			s.logger.Warn("Create: tutor id=%d not found", req.TutorID)
			return nil, ErrTutorNotFound
		}
		s.logger.Error("Create: failed to get tutor id=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: failed to get tutor: %v", ErrInternal, err)
	}

	var created *domain.AvailabilityWindow

	// 4. Проверка пересечений и вставка в сериализуемой транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Окна того же тьютора на тот же день недели (FOR UPDATE)
		existing, err := s.availabilityRepo.ListByTutorAndDay(txCtx, req.TutorID, req.DayOfWeek)
		if err != nil {
			s.logger.Error("Create: failed to list windows for tutor=%d: %v", req.TutorID, err)
			return fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
		}

		// 4.2. Новое окно не должно пересекаться с существующими
		if overlap := findOverlap(existing, req.StartTime, req.EndTime, nil); overlap != nil {
			s.logger.Warn("Create: window %s-%s overlaps window id=%d", req.StartTime, req.EndTime, overlap.ID)
			return ErrWindowOverlap
		}

		// 4.3. Создаем окно
		created, err = s.availabilityRepo.Create(txCtx, req.ToDomainWindow())
		if err != nil {
			s.logger.Error("Create: repository error: %v", err)
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: successfully created window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// Update обновляет существующее окно доступности
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Update: window id=%d by user=%d", id, actor.ID)

	var updated *domain.AvailabilityWindow

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем существующее окно
		window, err := s.availabilityRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				s.logger.Warn("Update: window id=%d not found", id)
				return ErrWindowNotFound
			}
			s.logger.Error("Update: failed to get window id=%d: %v", id, err)
			return fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
		}

		// 2. Проверяем права доступа (владелец либо админ)
		if !domain.Allowed(actor, []int64{window.TutorID}, domain.CapManageAvailability) {
			s.logger.Warn("Update: user=%d may not manage window id=%d of tutor=%d",
				actor.ID, id, window.TutorID)
			return ErrAccessDenied
		}

		// 3. Применяем изменения и валидируем результат
		req.ApplyToWindow(window)

		if err := validateWindowData(window.DayOfWeek, window.StartTime, window.EndTime); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return err
		}

		// 4. Проверяем пересечения без учёта самого окна (FOR UPDATE)
		existing, err := s.availabilityRepo.ListByTutorAndDay(txCtx, window.TutorID, window.DayOfWeek)
		if err != nil {
			s.logger.Error("Update: failed to list windows for tutor=%d: %v", window.TutorID, err)
			return fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
		}

		if overlap := findOverlap(existing, window.StartTime, window.EndTime, &window.ID); overlap != nil {
			s.logger.Warn("Update: window %s-%s overlaps window id=%d",
				window.StartTime, window.EndTime, overlap.ID)
			return ErrWindowOverlap
		}

		// 5. Сохраняем окно
		if err := s.availabilityRepo.Update(txCtx, window); err != nil {
			s.logger.Error("Update: repository error for window id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = window
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated window id=%d", id)
	return models.FromDomainWindow(updated), nil
}

// Delete удаляет окно доступности
// Жёсткое удаление; существующие резервации не затрагиваются
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: window id=%d by user=%d", id, actor.ID)

	// 1. Получаем окно для проверки прав
	window, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: failed to get window id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to get window: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (владелец либо админ)
	if !domain.Allowed(actor, []int64{window.TutorID}, domain.CapManageAvailability) {
		s.logger.Warn("Delete: user=%d may not manage window id=%d of tutor=%d",
			actor.ID, id, window.TutorID)
		return ErrAccessDenied
	}

	// 3. Удаляем окно
	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", id)
	return nil
}

// GetByID получает окно доступности по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WindowResponse, error) {
	s.logger.Info("GetByID: fetching window id=%d", id)

	window, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("GetByID: window id=%d not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("GetByID: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindow(window), nil
}

// ListByTutor получает все окна доступности тьютора
// Публичный метод - доступен всем
func (s *Service) ListByTutor(ctx context.Context, tutorID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListByTutor: fetching windows for tutor=%d", tutorID)

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	windows, err := s.availabilityRepo.ListByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("ListByTutor: repository error for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: ListByTutor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTutor: fetched %d windows for tutor=%d", len(windows), tutorID)
	return models.FromDomainWindowList(windows), nil
}

// ListAvailableWindows получает окна тьютора на день недели даты,
// не пересечённые ни одной неотменённой резервацией на эту дату
func (s *Service) ListAvailableWindows(ctx context.Context, tutorID int64, date time.Time) (*models.WindowListResponse, error) {
	s.logger.Info("ListAvailableWindows: tutor=%d, date=%s", tutorID, date.Format(domain.DateFormat))

	if tutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Окна на этот день недели
	windows, err := s.availabilityRepo.ListByTutorAndDay(ctx, tutorID, domain.ISOWeekday(date))
	if err != nil {
		s.logger.Error("ListAvailableWindows: failed to list windows for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 {
		return models.FromDomainWindowList(nil), nil
	}

	// 2. Активные резервации по всем услугам тьютора на эту дату
	serviceIDs, err := s.catalogRepo.ListActiveServiceIDsByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("ListAvailableWindows: failed to list services for tutor=%d: %v", tutorID, err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	reservations := make([]*domain.Reservation, 0)
	if len(serviceIDs) > 0 {
		reservations, err = s.reservationRepo.ListActiveByServicesAndDate(ctx, serviceIDs, date, nil)
		if err != nil {
			s.logger.Error("ListAvailableWindows: failed to list reservations: %v", err)
			return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}
	}

	// 3. Оставляем окна, свободные от резерваций целиком
	free := make([]*domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if !windowOccupied(w, reservations) {
			free = append(free, w)
		}
	}

	s.logger.Info("ListAvailableWindows: %d of %d windows free for tutor=%d",
		len(free), len(windows), tutorID)
	return models.FromDomainWindowList(free), nil
}

// validateWindowData валидирует день недели и интервал времени окна
func validateWindowData(dayOfWeek int, start, end types.TimeString) error {
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d",
			ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

// findOverlap ищет окно, пересекающееся с интервалом [start, end).
// Окно с ID excludeID пропускается.
func findOverlap(windows []*domain.AvailabilityWindow, start, end types.TimeString, excludeID *int64) *domain.AvailabilityWindow {
	for _, w := range windows {
		if excludeID != nil && w.ID == *excludeID {
			continue
		}
		if domain.Overlaps(start, end, w.StartTime, w.EndTime) {
			return w
		}
	}
	return nil
}

// windowOccupied проверяет, пересекает ли окно хотя бы одна активная резервация
func windowOccupied(w *domain.AvailabilityWindow, reservations []*domain.Reservation) bool {
	for _, res := range reservations {
		if !res.IsActive() {
			continue
		}
		if domain.Overlaps(w.StartTime, w.EndTime, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
}
