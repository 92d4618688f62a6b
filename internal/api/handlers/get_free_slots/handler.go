package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/domain"
	getFreeSlots "github.com/tutoweb/booking-service/internal/usecase/get_free_slots"
)

const (
	msgInvalidTutorID   = "некорректный ID тьютора"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTutorNotFound    = "тьютор не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInactive  = "услуга неактивна"
)

type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleByTutor GET /api/v1/tutors/{tutorId}/free-slots?date=YYYY-MM-DD
func (h *Handler) HandleByTutor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tutorID, err := strconv.ParseInt(vars["tutorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/free-slots - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	result, err := h.useCase.ExecuteByTutor(r.Context(), tutorID, date)
	if err != nil {
		h.respondUseCaseError(w, "GET /tutors/{id}/free-slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleByService GET /api/v1/services/{serviceId}/free-slots?date=YYYY-MM-DD
func (h *Handler) HandleByService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/free-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, ok := h.parseDate(w, r)
	if !ok {
		return
	}

	result, err := h.useCase.ExecuteByService(r.Context(), serviceID, date)
	if err != nil {
		h.respondUseCaseError(w, "GET /services/{id}/free-slots", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	rawDate := r.URL.Query().Get("date")

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("free-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return time.Time{}, false
	}

	return date, true
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, getFreeSlots.ErrTutorNotFound):
		h.logger.Warn("%s - Tutor not found", route)
		handlers.RespondNotFound(w, msgTutorNotFound)

	case errors.Is(err, getFreeSlots.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, getFreeSlots.ErrServiceInactive):
		h.logger.Warn("%s - Service inactive", route)
		handlers.RespondBadRequest(w, msgServiceInactive)

	case errors.Is(err, getFreeSlots.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	default:
		h.logger.Error("%s - Failed to get free slots: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
