package create_reservation

import (
	"errors"
	"net/http"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	createReservation "github.com/tutoweb/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "студент может создавать резервации только для себя"
	msgStudentNotFound     = "студент не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга неактивна"
	msgNoAvailability      = "у тьютора нет доступности на выбранное время"
	msgReservationConflict = "выбранное время уже занято"
	msgInvalidTimeRange    = "время начала должно быть раньше времени конца"
	msgInvalidInput        = "некорректные данные резервации"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Студент создает резервации только для себя, админ — для кого угодно
	if req.StudentID == 0 {
		req.StudentID = actor.ID
	}
	if req.StudentID != actor.ID && !actor.IsAdmin() {
		h.logger.Warn("POST /reservations - User %d attempted to book for student %d", actor.ID, req.StudentID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrReservationConflict):
			h.logger.Warn("POST /reservations - Conflict: student_id=%d, service_id=%d", req.StudentID, req.ServiceID)
			handlers.RespondConflict(w, msgReservationConflict)

		case errors.Is(err, createReservation.ErrStudentNotFound):
			h.logger.Warn("POST /reservations - Student not found: student_id=%d", req.StudentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrServiceInactive):
			h.logger.Warn("POST /reservations - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createReservation.ErrNoAvailability):
			h.logger.Warn("POST /reservations - No availability: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgNoAvailability)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: student_id=%d", req.StudentID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: student_id=%d, service_id=%d, error=%v",
				req.StudentID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, student_id=%d", result.ID, req.StudentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
