package get_tutor_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/reservations"
	reservationModels "github.com/tutoweb/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidTutorID = "некорректный ID тьютора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/reservations?date=YYYY-MM-DD
// Без параметра date возвращает все резервации тьютора,
// с параметром - только неотменённые на эту дату.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/reservations - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /tutors/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var result *reservationModels.ReservationListResponse

	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /tutors/{id}/reservations - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		result, err = h.service.ListForTutorOnDate(r.Context(), actor, tutorID, date)
		if err != nil {
			h.respondServiceError(w, tutorID, actor.ID, err)
			return
		}
	} else {
		result, err = h.service.ListByTutor(r.Context(), actor, tutorID)
		if err != nil {
			h.respondServiceError(w, tutorID, actor.ID, err)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, tutorID, userID int64, err error) {
	switch {
	case errors.Is(err, reservations.ErrAccessDenied):
		h.logger.Warn("GET /tutors/{id}/reservations - Access denied: tutor_id=%d, user_id=%d", tutorID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, reservations.ErrInvalidInput):
		h.logger.Warn("GET /tutors/{id}/reservations - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)

	default:
		h.logger.Error("GET /tutors/{id}/reservations - Failed to list reservations: tutor_id=%d, error=%v",
			tutorID, err)
		handlers.RespondInternalError(w)
	}
}
