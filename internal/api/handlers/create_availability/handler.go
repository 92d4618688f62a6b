package create_availability

import (
	"errors"
	"net/http"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	"github.com/tutoweb/booking-service/internal/service/availability"
	"github.com/tutoweb/booking-service/internal/service/availability/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTutorNotFound      = "тьютор не найден"
	msgWindowOverlap      = "окно пересекается с существующим окном"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные окна доступности"
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

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Тьютор создает окна только для себя
	if req.TutorID == 0 {
		req.TutorID = actor.ID
	}

	result, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowOverlap):
			h.logger.Warn("POST /availability - Overlap: tutor_id=%d", req.TutorID)
			handlers.RespondConflict(w, msgWindowOverlap)

		case errors.Is(err, availability.ErrTutorNotFound):
			h.logger.Warn("POST /availability - Tutor not found: tutor_id=%d", req.TutorID)
			handlers.RespondNotFound(w, msgTutorNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /availability - Access denied: tutor_id=%d, user_id=%d", req.TutorID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to create window: tutor_id=%d, error=%v", req.TutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Window created: window_id=%d, tutor_id=%d", result.ID, req.TutorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
