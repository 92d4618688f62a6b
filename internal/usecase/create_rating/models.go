package create_rating

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
)

// Request модель запроса на создание оценки
type Request struct {
	Actor         domain.Actor // Аутентифицированный пользователь
	ReservationID int64        // ID оцениваемой резервации
	RaterID       int64        // ID автора оценки (должен совпадать с Actor.ID)
	RatedID       int64        // ID оцениваемого тьютора
	Score         int          // Оценка 1..5
	Comment       *string      // Комментарий (опционально)
}

// Response модель ответа с созданной оценкой и новым агрегатом тьютора
type Response struct {
	ID            int64
	ReservationID int64
	RaterID       int64
	RatedID       int64
	Score         int
	Comment       *string
	CreatedAt     time.Time

	TutorAverageRating float64
	TutorReviewCount   int
}
