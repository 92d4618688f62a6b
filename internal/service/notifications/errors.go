package notifications

import "errors"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено
	// или принадлежит другому пользователю
	ErrNotificationNotFound = errors.New("service.notifications: notification not found")

	// ErrUserNotFound возвращается, когда получатель уведомления не найден
	ErrUserNotFound = errors.New("service.notifications: user not found")

	// ErrReservationNotFound возвращается, когда привязанная резервация не найдена
	ErrReservationNotFound = errors.New("service.notifications: reservation not found")

	// ErrInvalidType возвращается при неизвестном типе уведомления
	ErrInvalidType = errors.New("service.notifications: invalid notification type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.notifications: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.notifications: internal error")
)
