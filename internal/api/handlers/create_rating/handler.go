package create_rating

import (
	"errors"
	"net/http"

	"github.com/tutoweb/booking-service/internal/api/handlers"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	createRating "github.com/tutoweb/booking-service/internal/usecase/create_rating"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgMissingUserID           = "отсутствует ID пользователя"
	msgReservationNotFound     = "резервация не найдена"
	msgReservationNotCompleted = "оценивать можно только завершённую резервацию"
	msgPaymentRequired         = "у резервации нет завершённого платежа"
	msgForbidden               = "оценку может оставить только студент резервации"
	msgAlreadyRated            = "резервация уже оценена"
	msgInvalidScore            = "оценка должна быть от 1 до 5"
	msgInvalidRated            = "оцениваемый пользователь не является тьютором резервации"
	msgInvalidInput            = "некорректные данные оценки"
)

type Handler struct {
	useCase CreateRatingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRatingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/ratings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /ratings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRatingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /ratings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createRating.ErrReservationNotFound):
			h.logger.Warn("POST /ratings - Reservation not found: reservation_id=%d", req.ReservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, createRating.ErrReservationNotCompleted):
			h.logger.Warn("POST /ratings - Reservation not completed: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgReservationNotCompleted)

		case errors.Is(err, createRating.ErrPaymentRequired):
			h.logger.Warn("POST /ratings - No completed payment: reservation_id=%d", req.ReservationID)
			handlers.RespondBadRequest(w, msgPaymentRequired)

		case errors.Is(err, createRating.ErrForbidden):
			h.logger.Warn("POST /ratings - Forbidden: reservation_id=%d, user_id=%d", req.ReservationID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createRating.ErrAlreadyRated):
			h.logger.Warn("POST /ratings - Already rated: reservation_id=%d", req.ReservationID)
			handlers.RespondConflict(w, msgAlreadyRated)

		case errors.Is(err, createRating.ErrInvalidScore):
			h.logger.Warn("POST /ratings - Invalid score: %d", req.Score)
			handlers.RespondBadRequest(w, msgInvalidScore)

		case errors.Is(err, createRating.ErrInvalidRated):
			h.logger.Warn("POST /ratings - Invalid rated user: rated_id=%d", req.RatedID)
			handlers.RespondBadRequest(w, msgInvalidRated)

		case errors.Is(err, createRating.ErrInvalidInput):
			h.logger.Warn("POST /ratings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /ratings - Failed to create rating: reservation_id=%d, error=%v",
				req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /ratings - Rating created: rating_id=%d, reservation_id=%d", result.ID, result.ReservationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
