package response

import (
	"time"

	"appointment-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type TimeSlotResponse struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}

type DayAvailabilityResponse struct {
	ProviderID uuid.UUID          `json:"providerId"`
	Date       string             `json:"date"`
	Open       bool               `json:"open"`
	Slots      []TimeSlotResponse `json:"slots"`
}

func FromDayAvailabilityView(view *queries.DayAvailabilityView) DayAvailabilityResponse {
	slots := make([]TimeSlotResponse, 0, len(view.Slots))
	for _, s := range view.Slots {
		slots = append(slots, TimeSlotResponse{
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}
	return DayAvailabilityResponse{
		ProviderID: view.ProviderID,
		Date:       view.Date,
		Open:       view.Open,
		Slots:      slots,
	}
}
