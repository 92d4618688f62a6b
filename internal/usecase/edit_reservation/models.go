package edit_reservation

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/types"
)

// Request модель запроса на изменение резервации.
// Nil-поля остаются без изменений.
type Request struct {
	ReservationID int64        // ID резервации
	Actor         domain.Actor // Пользователь, выполняющий операцию

	Date           *time.Time        // Новая дата (опционально)
	StartTime      *types.TimeString // Новое время начала (опционально)
	EndTime        *types.TimeString // Новое время конца (опционально)
	State          *string           // Новое состояние (опционально)
	Notes          *string           // Новые заметки (опционально)
	VirtualRoomURL *string           // Явная ссылка на виртуальную комнату (опционально)
}

// Response модель ответа с обновлённой резервацией
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
