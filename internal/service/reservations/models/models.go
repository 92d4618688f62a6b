package models

import (
	"time"

	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/types"
)

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID             int64            `json:"id"`
	StudentID      int64            `json:"studentId"`
	ServiceID      int64            `json:"serviceId"`
	Date           string           `json:"date"` // YYYY-MM-DD
	StartTime      types.TimeString `json:"startTime"`
	EndTime        types.TimeString `json:"endTime"`
	State          string           `json:"state"`
	Notes          *string          `json:"notes,omitempty"`
	VirtualRoomURL *string          `json:"virtualRoomUrl,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	if res == nil {
		return nil
	}

	return &ReservationResponse{
		ID:             res.ID,
		StudentID:      res.StudentID,
		ServiceID:      res.ServiceID,
		Date:           res.Date.Format(domain.DateFormat),
		StartTime:      res.StartTime,
		EndTime:        res.EndTime,
		State:          string(res.State),
		Notes:          res.Notes,
		VirtualRoomURL: res.VirtualRoomURL,
		CreatedAt:      res.CreatedAt,
		UpdatedAt:      res.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, res := range reservations {
		if rr := FromDomainReservation(res); rr != nil {
			resp.Reservations = append(resp.Reservations, *rr)
		}
	}

	return resp
}
