package models

import (
	"github.com/tutoweb/booking-service/internal/domain"
	"github.com/tutoweb/booking-service/pkg/types"
)

// Request модели

// CreateWindowRequest запрос на создание окна доступности
type CreateWindowRequest struct {
	TutorID   int64            `json:"tutorId"`
	DayOfWeek int              `json:"dayOfWeek"` // ISO 8601: Monday=1 .. Sunday=7
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// UpdateWindowRequest запрос на обновление окна доступности
// Обновляются только переданные поля
type UpdateWindowRequest struct {
	DayOfWeek *int              `json:"dayOfWeek,omitempty"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID        int64            `json:"id"`
	TutorID   int64            `json:"tutorId"`
	DayOfWeek int              `json:"dayOfWeek"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// WindowListResponse ответ со списком окон доступности
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:        w.ID,
		TutorID:   w.TutorID,
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		if wr := FromDomainWindow(w); wr != nil {
			resp.Windows = append(resp.Windows, *wr)
		}
	}

	return resp
}

// ToDomainWindow конвертирует CreateWindowRequest в domain модель
func (r *CreateWindowRequest) ToDomainWindow() *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		TutorID:   r.TutorID,
		DayOfWeek: r.DayOfWeek,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// ApplyToWindow применяет обновления к существующему окну
// Обновляются только непустые (not nil) поля из request
func (r *UpdateWindowRequest) ApplyToWindow(w *domain.AvailabilityWindow) {
	if r.DayOfWeek != nil {
		w.DayOfWeek = *r.DayOfWeek
	}
	if r.StartTime != nil {
		w.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		w.EndTime = *r.EndTime
	}
}
