package domain

import "time"

// NotificationType classifies a notification record
type NotificationType string

const (
	NotificationReservation NotificationType = "reservation"
	NotificationPayment     NotificationType = "payment"
	NotificationReminder    NotificationType = "reminder"
	NotificationSystem      NotificationType = "system"
)

// ValidNotificationType reports whether t names a known type
func ValidNotificationType(t string) bool {
	switch NotificationType(t) {
	case NotificationReservation, NotificationPayment, NotificationReminder, NotificationSystem:
		return true
	}
	return false
}

// Notification is a persisted message for a user. Creation is a
// fire-and-forget side effect of engine operations; the delivery
// transport lives outside this service.
type Notification struct {
	ID            int64
	UserID        int64
	Title         string
	Message       string
	Type          NotificationType
	Read          bool
	CreatedAt     time.Time
	ScheduledAt   *time.Time
	ReservationID *int64
}
