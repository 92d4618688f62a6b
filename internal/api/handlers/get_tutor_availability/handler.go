package get_tutor_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/internal/service/availability"
	availabilityModels "github.com/tutoweb/booking-service/internal/service/availability/models"
)

const (
	msgInvalidTutorID = "некорректный ID тьютора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/availability?date=YYYY-MM-DD
// Без параметра date возвращает все окна тьютора,
// с параметром - окна дня недели, свободные от резерваций на эту дату.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	var result *availabilityModels.WindowListResponse

	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /tutors/{id}/availability - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		result, err = h.service.ListAvailableWindows(r.Context(), tutorID, date)
		if err != nil {
			h.respondServiceError(w, tutorID, err)
			return
		}
	} else {
		result, err = h.service.ListByTutor(r.Context(), tutorID)
		if err != nil {
			h.respondServiceError(w, tutorID, err)
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, tutorID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("GET /tutors/{id}/availability - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)

	default:
		h.logger.Error("GET /tutors/{id}/availability - Failed to list windows: tutor_id=%d, error=%v", tutorID, err)
		handlers.RespondInternalError(w)
	}
}
