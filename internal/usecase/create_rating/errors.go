package create_rating

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("create_rating: reservation not found")

	// ErrReservationNotCompleted возвращается, когда резервация
	// не находится в состоянии completed
	ErrReservationNotCompleted = errors.New("create_rating: reservation is not completed")

	// ErrPaymentRequired возвращается, когда у резервации нет
	// завершённого платежа
	ErrPaymentRequired = errors.New("create_rating: reservation has no completed payment")

	// ErrForbidden возвращается, когда оценку пытается оставить
	// не студент резервации
	ErrForbidden = errors.New("create_rating: only the student of the reservation may rate")

	// ErrAlreadyRated возвращается, когда резервация уже оценена
	ErrAlreadyRated = errors.New("create_rating: reservation already rated")

	// ErrInvalidScore возвращается, когда оценка вне диапазона 1..5
	ErrInvalidScore = errors.New("create_rating: score must be between 1 and 5")

	// ErrInvalidRated возвращается, когда оцениваемый пользователь
	// не является тьютором услуги резервации
	ErrInvalidRated = errors.New("create_rating: rated user is not the tutor of the reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_rating: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_rating: internal error")
)
