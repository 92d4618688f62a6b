package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	notificationRepo "github.com/tutoweb/booking-service/internal/infra/storage/notification"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	"github.com/tutoweb/booking-service/internal/service/notifications/models"
)

// Service сервис уведомлений. Create реализует сток уведомлений,
// используемый use cases как fire-and-forget побочный эффект.
type Service struct {
	notificationRepo NotificationRepository
	reservationRepo  ReservationRepository
	catalogRepo      CatalogRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	notificationRepo NotificationRepository,
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		reservationRepo:  reservationRepo,
		catalogRepo:      catalogRepo,
		logger:           logger,
	}
}

// Create создает уведомление для пользователя
func (s *Service) Create(
	ctx context.Context,
	userID int64,
	title, message string,
	typ domain.NotificationType,
	reservationID *int64,
	scheduledAt *time.Time,
) (*domain.Notification, error) {
	s.logger.Info("Create: notification for user=%d, type=%s", userID, typ)

	// 1. Валидация входных данных
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !domain.ValidNotificationType(string(typ)) {
		s.logger.Warn("Create: unknown notification type %q", typ)
		return nil, ErrInvalidType
	}

	// 2. Проверяем существование получателя
	if _, err := s.catalogRepo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, catalogRepo.ErrUserNotFound) {
			s.logger.Warn("Create: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Create: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	// 3. Проверяем существование резервации, если она привязана
	if reservationID != nil {
		if _, err := s.reservationRepo.GetByID(ctx, *reservationID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Create: reservation id=%d not found", *reservationID)
				return nil, ErrReservationNotFound
			}
			s.logger.Error("Create: failed to get reservation id=%d: %v", *reservationID, err)
			return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
	}

	// 4. Создаем уведомление
	created, err := s.notificationRepo.Create(ctx, &domain.Notification{
		UserID:        userID,
		Title:         title,
		Message:       message,
		Type:          typ,
		ScheduledAt:   scheduledAt,
		ReservationID: reservationID,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created notification id=%d for user=%d", created.ID, userID)
	return created, nil
}

// ListByUser получает уведомления пользователя, новые первыми
func (s *Service) ListByUser(ctx context.Context, userID int64, onlyUnread bool) (*models.NotificationListResponse, error) {
	s.logger.Info("ListByUser: fetching notifications for user=%d, onlyUnread=%v", userID, onlyUnread)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	notifications, err := s.notificationRepo.ListByUser(ctx, userID, onlyUnread)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d notifications for user=%d", len(notifications), userID)
	return models.FromDomainNotificationList(notifications), nil
}

// MarkRead помечает уведомление пользователя прочитанным.
// Чужие уведомления выглядят как несуществующие.
func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	s.logger.Info("MarkRead: notification id=%d for user=%d", id, userID)

	if userID <= 0 || id <= 0 {
		return fmt.Errorf("%w: userID and id must be positive", ErrInvalidInput)
	}

	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными
func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	s.logger.Info("MarkAllRead: user=%d", userID)

	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	return nil
}
