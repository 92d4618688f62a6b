package models

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	Read          bool       `json:"read"`
	CreatedAt     time.Time  `json:"createdAt"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
	ReservationID *int64     `json:"reservationId,omitempty"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:            n.ID,
		UserID:        n.UserID,
		Title:         n.Title,
		Message:       n.Message,
		Type:          string(n.Type),
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
		ScheduledAt:   n.ScheduledAt,
		ReservationID: n.ReservationID,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(notifications []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}

	for _, n := range notifications {
		if nr := FromDomainNotification(n); nr != nil {
			resp.Notifications = append(resp.Notifications, *nr)
		}
	}

	return resp
}
