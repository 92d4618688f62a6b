package edit_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("edit_reservation: reservation not found")

	// ErrForbidden возвращается, когда у пользователя нет прав на изменение резервации
	ErrForbidden = errors.New("edit_reservation: operation not allowed for this user")

	// ErrStudentOnlyCancel возвращается, когда студент пытается изменить
	// состояние резервации на что-либо кроме cancelled
	ErrStudentOnlyCancel = errors.New("edit_reservation: student may only cancel a reservation")

	// ErrTooLateToCancel возвращается, когда до начала резервации осталось
	// меньше минимального срока отмены
	ErrTooLateToCancel = errors.New("edit_reservation: too late to cancel reservation")

	// ErrTutorCannotReschedule возвращается, когда тьютор пытается изменить
	// дату резервации; время в пределах дня тьютор менять может
	ErrTutorCannotReschedule = errors.New("edit_reservation: tutor may not change reservation date")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния
	ErrInvalidTransition = errors.New("edit_reservation: invalid state transition")

	// ErrNoAvailability возвращается, когда новый интервал не покрыт
	// ни одним окном доступности тьютора
	ErrNoAvailability = errors.New("edit_reservation: tutor has no availability for this time")

	// ErrReservationConflict возвращается, когда новый интервал пересекается
	// с другой неотменённой резервацией
	ErrReservationConflict = errors.New("edit_reservation: overlapping reservation exists")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени конца
	ErrInvalidTimeRange = errors.New("edit_reservation: start time must be before end time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_reservation: internal error")
)
