package edit_reservation

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	editReservation "github.com/tutoweb/booking-service/internal/usecase/edit_reservation"
	"github.com/tutoweb/booking-service/pkg/types"
)

// EditReservationRequest HTTP request model
// Все поля опциональны - обновляются только переданные значения
type EditReservationRequest struct {
	Date           *string `json:"date,omitempty"`      // "2026-09-15"
	StartTime      *string `json:"startTime,omitempty"` // "10:00" или "10:00:00"
	EndTime        *string `json:"endTime,omitempty"`
	State          *string `json:"state,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	VirtualRoomURL *string `json:"virtualRoomUrl,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64   `json:"id"`
	StudentID      int64   `json:"studentId"`
	ServiceID      int64   `json:"serviceId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	State          string  `json:"state"`
	Notes          *string `json:"notes,omitempty"`
	VirtualRoomURL *string `json:"virtualRoomUrl,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditReservationRequest) ToUseCaseRequest(reservationID int64, actor domain.Actor) (*editReservation.Request, error) {
	req := &editReservation.Request{
		ReservationID:  reservationID,
		Actor:          actor,
		State:          r.State,
		Notes:          r.Notes,
		VirtualRoomURL: r.VirtualRoomURL,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		StudentID:      resp.StudentID,
		ServiceID:      resp.ServiceID,
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		State:          resp.State,
		Notes:          resp.Notes,
		VirtualRoomURL: resp.VirtualRoomURL,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
