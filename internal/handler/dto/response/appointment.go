package response

import (
	"time"

	"appointment-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceLineResponse struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceCents      int64     `json:"priceCents"`
}

type AppointmentResponse struct {
	ID              uuid.UUID             `json:"id"`
	ClientID        uuid.UUID             `json:"clientId"`
	ProviderID      uuid.UUID             `json:"providerId"`
	StartTime       time.Time             `json:"startTime"`
	EndTime         time.Time             `json:"endTime"`
	Status          string                `json:"status"`
	Services        []ServiceLineResponse `json:"services"`
	TotalPriceCents int64                 `json:"totalPriceCents"`
	Notes           string                `json:"notes,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

func FromAppointmentView(view queries.AppointmentView) AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(view.Services))
	for _, s := range view.Services {
		services = append(services, ServiceLineResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
		})
	}
	return AppointmentResponse{
		ID:              view.ID,
		ClientID:        view.ClientID,
		ProviderID:      view.ProviderID,
		StartTime:       view.StartTime,
		EndTime:         view.EndTime,
		Status:          view.Status,
		Services:        services,
		TotalPriceCents: view.TotalPriceCents,
		Notes:           view.Notes,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}

func FromAppointmentViews(views []queries.AppointmentView) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(views))
	for _, view := range views {
		out = append(out, FromAppointmentView(view))
	}
	return out
}
