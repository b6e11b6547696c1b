package request

import (
	"strings"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	ProviderID uuid.UUID   `json:"provider_id" binding:"required"`
	StartTime  time.Time   `json:"start_time" binding:"required"`
	ServiceIDs []uuid.UUID `json:"service_ids" binding:"required,min=1"`
	Notes      *string     `json:"notes,omitempty"`
}

func (r CreateAppointmentRequest) ToInput(clientID uuid.UUID) commands.CreateAppointmentInput {
	return commands.CreateAppointmentInput{
		ClientID:   clientID,
		ProviderID: r.ProviderID,
		StartTime:  r.StartTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}
}

type UpdateAppointmentRequest struct {
	StartTime  *time.Time  `json:"start_time,omitempty"`
	ServiceIDs []uuid.UUID `json:"service_ids,omitempty"`
	Notes      *string     `json:"notes,omitempty"`
	Status     *string     `json:"status,omitempty"`
}

func (r UpdateAppointmentRequest) ToInput() (commands.UpdateAppointmentInput, bool) {
	in := commands.UpdateAppointmentInput{
		StartTime:  r.StartTime,
		ServiceIDs: r.ServiceIDs,
		Notes:      r.Notes,
	}
	if r.Status != nil {
		status := appointment.Status(strings.ToUpper(strings.TrimSpace(*r.Status)))
		if !status.IsValid() {
			return commands.UpdateAppointmentInput{}, false
		}
		in.Status = &status
	}
	return in, true
}
