package create_reservation

import (
	"time"

	"github.com/tutoweb/booking-service/pkg/types"
)

// Request модель запроса на создание резервации
type Request struct {
	StudentID int64            // ID студента, для которого создаётся резервация
	ServiceID int64            // ID услуги тьюторства
	Date      time.Time        // Дата резервации (без времени)
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время конца
	Notes     *string          // Заметки (опционально)
	State     *string          // Начальное состояние (опционально, по умолчанию pending)
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID             int64
	StudentID      int64
	ServiceID      int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	State          string
	Notes          *string
	VirtualRoomURL *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
