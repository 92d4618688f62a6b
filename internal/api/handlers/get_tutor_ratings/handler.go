package get_tutor_ratings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/service/ratings"
)

const msgInvalidTutorID = "некорректный ID тьютора"

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/ratings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/ratings - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	result, err := h.service.ListByTutor(r.Context(), tutorID)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidInput):
			h.logger.Warn("GET /tutors/{id}/ratings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTutorID)

		default:
			h.logger.Error("GET /tutors/{id}/ratings - Failed to list ratings: tutor_id=%d, error=%v", tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
