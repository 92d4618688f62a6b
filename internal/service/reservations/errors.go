package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("service.reservations: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не участник
	// резервации и не администратор
	ErrAccessDenied = errors.New("service.reservations: access denied")

	// ErrDeleteRestricted возвращается при попытке удалить резервацию,
	// у которой есть завершённый платёж или оценка
	ErrDeleteRestricted = errors.New("service.reservations: reservation has payment or rating records")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.reservations: internal error")
)
