package get_free_slots

import (
	"github.com/tutoweb/booking-service/internal/domain"
	getFreeSlots "github.com/tutoweb/booking-service/internal/usecase/get_free_slots"
)

// FreeSlotsResponse HTTP response model
type FreeSlotsResponse struct {
	TutorID int64  `json:"tutorId"`
	Date    string `json:"date"`
	Slots   []Slot `json:"slots"`
}

// Slot свободный интервал времени
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFreeSlots.Response) *FreeSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		}
	}

	return &FreeSlotsResponse{
		TutorID: resp.TutorID,
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   slots,
	}
}
