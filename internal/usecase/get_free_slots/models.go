package get_free_slots

import (
	"time"

	"github.com/tutoweb/booking-service/pkg/types"
)

// Response модель ответа со списком свободных слотов
type Response struct {
	TutorID int64     // ID тьютора, чьи окна использовались
	Date    time.Time // Дата, на которую запрашивались слоты
	Slots   []Slot    // Свободные слоты в хронологическом порядке
}

// Slot свободный интервал времени внутри окна доступности.
// Последний слот окна может быть короче стандартного шага.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
