package get_free_slots

import "errors"

var (
	// ErrTutorNotFound возвращается, когда тьютор не найден
	ErrTutorNotFound = errors.New("get_free_slots: tutor not found")

	// ErrServiceNotFound возвращается, когда услуга тьюторства не найдена
	ErrServiceNotFound = errors.New("get_free_slots: tutoring service not found")

	// ErrServiceInactive возвращается, когда услуга тьюторства неактивна
	ErrServiceInactive = errors.New("get_free_slots: tutoring service is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_free_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_free_slots: internal error")
)
