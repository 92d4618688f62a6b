package get_notifications

import (
	"context"

	"github.com/tutoweb/booking-service/internal/service/notifications/models"
)

type NotificationService interface {
	ListByUser(ctx context.Context, userID int64, onlyUnread bool) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
