package create_reservation

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	createReservation "github.com/tutoweb/booking-service/internal/usecase/create_reservation"
	"github.com/tutoweb/booking-service/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	StudentID int64   `json:"studentId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00" или "10:00:00"
	EndTime   string  `json:"endTime"`
	Notes     *string `json:"notes,omitempty"`
	State     *string `json:"state,omitempty"` // по умолчанию pending
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
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим интервал времени
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		StudentID: r.StudentID,
		ServiceID: r.ServiceID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     r.Notes,
		State:     r.State,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
