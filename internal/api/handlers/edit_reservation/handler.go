package edit_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	editReservation "github.com/tutoweb/booking-service/internal/usecase/edit_reservation"
)

const (
	msgInvalidReservationID  = "некорректный ID резервации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgNotFound              = "резервация не найдена"
	msgForbidden             = "доступ запрещен"
	msgStudentOnlyCancel     = "студент может только отменить резервацию"
	msgTooLateToCancel       = "слишком поздно отменять резервацию"
	msgTutorCannotReschedule = "тьютор не может менять дату резервации"
	msgInvalidTransition     = "недопустимая смена состояния резервации"
	msgNoAvailability        = "у тьютора нет доступности на выбранное время"
	msgReservationConflict   = "выбранное время уже занято"
	msgInvalidTimeRange      = "время начала должно быть раньше времени конца"
	msgInvalidInput          = "некорректные данные резервации"
)

type Handler struct {
	useCase EditReservationUseCase
	logger  Logger
}

func NewHandler(useCase EditReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req EditReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, actor)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editReservation.ErrForbidden):
			h.logger.Warn("PUT /reservations/{id} - Forbidden: reservation_id=%d, user_id=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editReservation.ErrStudentOnlyCancel):
			h.logger.Warn("PUT /reservations/{id} - Student only cancel: reservation_id=%d, user_id=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgStudentOnlyCancel)

		case errors.Is(err, editReservation.ErrTooLateToCancel):
			h.logger.Warn("PUT /reservations/{id} - Too late to cancel: reservation_id=%d", reservationID)
			handlers.RespondForbidden(w, msgTooLateToCancel)

		case errors.Is(err, editReservation.ErrTutorCannotReschedule):
			h.logger.Warn("PUT /reservations/{id} - Tutor reschedule attempt: reservation_id=%d, user_id=%d", reservationID, actor.ID)
			handlers.RespondForbidden(w, msgTutorCannotReschedule)

		case errors.Is(err, editReservation.ErrInvalidTransition):
			h.logger.Warn("PUT /reservations/{id} - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTransition)

		case errors.Is(err, editReservation.ErrNoAvailability):
			h.logger.Warn("PUT /reservations/{id} - No availability: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgNoAvailability)

		case errors.Is(err, editReservation.ErrReservationConflict):
			h.logger.Warn("PUT /reservations/{id} - Conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgReservationConflict)

		case errors.Is(err, editReservation.ErrInvalidTimeRange):
			h.logger.Warn("PUT /reservations/{id} - Invalid time range: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, editReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to edit reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d, state=%s",
		result.ID, result.State)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
