package create_reservation

import "errors"

var (
	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_reservation: student not found")

	// ErrServiceNotFound возвращается, когда услуга тьюторства не найдена
	ErrServiceNotFound = errors.New("create_reservation: tutoring service not found")

	// ErrServiceInactive возвращается, когда услуга тьюторства неактивна
	ErrServiceInactive = errors.New("create_reservation: tutoring service is not active")

	// ErrNoAvailability возвращается, когда интервал резервации не покрыт
	// ни одним окном доступности тьютора на этот день недели
	ErrNoAvailability = errors.New("create_reservation: tutor has no availability for this time")

	// ErrReservationConflict возвращается, когда интервал пересекается
	// с существующей неотменённой резервацией этой услуги на эту дату
	ErrReservationConflict = errors.New("create_reservation: overlapping reservation exists")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени конца
	ErrInvalidTimeRange = errors.New("create_reservation: start time must be before end time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
