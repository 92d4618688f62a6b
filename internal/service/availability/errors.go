package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("service.availability: window not found")

	// ErrTutorNotFound возвращается, когда тьютор не найден
	ErrTutorNotFound = errors.New("service.availability: tutor not found")

	// ErrWindowOverlap возвращается, когда окно пересекается с другим
	// окном того же тьютора на тот же день недели
	ErrWindowOverlap = errors.New("service.availability: window overlaps an existing window")

	// ErrAccessDenied возвращается, когда окнами управляет не их владелец
	ErrAccessDenied = errors.New("service.availability: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.availability: internal error")
)
