package response

import (
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/usecase/queries"

	"github.com/google/uuid"
)

type WorkScheduleResponse struct {
	Day    string `json:"day"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Active bool   `json:"active"`
}

type WeeklyScheduleResponse struct {
	ProviderID uuid.UUID              `json:"providerId"`
	Days       []WorkScheduleResponse `json:"days"`
}

func FromWeeklyScheduleView(view *queries.WeeklyScheduleView) WeeklyScheduleResponse {
	days := make([]WorkScheduleResponse, 0, len(view.Days))
	for _, d := range view.Days {
		days = append(days, WorkScheduleResponse{
			Day:    d.Day,
			Start:  d.Start,
			End:    d.End,
			Active: d.Active,
		})
	}
	return WeeklyScheduleResponse{ProviderID: view.ProviderID, Days: days}
}

func FromWorkSchedules(providerID uuid.UUID, entries []schedule.WorkSchedule) WeeklyScheduleResponse {
	days := make([]WorkScheduleResponse, 0, len(entries))
	for _, ws := range entries {
		days = append(days, WorkScheduleResponse{
			Day:    ws.Day.String(),
			Start:  ws.Start.String(),
			End:    ws.End.String(),
			Active: ws.Active,
		})
	}
	return WeeklyScheduleResponse{ProviderID: providerID, Days: days}
}

type ScheduleExceptionResponse struct {
	ID     uuid.UUID `json:"id"`
	Date   string    `json:"date"`
	Type   string    `json:"type"`
	Start  *string   `json:"start,omitempty"`
	End    *string   `json:"end,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

func FromScheduleExceptionView(view queries.ScheduleExceptionView) ScheduleExceptionResponse {
	return ScheduleExceptionResponse{
		ID:     view.ID,
		Date:   view.Date,
		Type:   view.Type,
		Start:  view.Start,
		End:    view.End,
		Reason: view.Reason,
	}
}

func FromScheduleException(exc *schedule.ScheduleException) ScheduleExceptionResponse {
	return FromScheduleExceptionView(queries.NewScheduleExceptionView(*exc))
}

func FromScheduleExceptionViews(views []queries.ScheduleExceptionView) []ScheduleExceptionResponse {
	out := make([]ScheduleExceptionResponse, 0, len(views))
	for _, view := range views {
		out = append(out, FromScheduleExceptionView(view))
	}
	return out
}

type SlotConfigResponse struct {
	SlotDurationMinutes int `json:"slotDurationMinutes"`
	BufferTimeMinutes   int `json:"bufferTimeMinutes"`
	BookingLeadDays     int `json:"bookingLeadDays"`
	BookingAheadDays    int `json:"bookingAheadDays"`
}

func FromSlotConfigView(view *queries.SlotConfigView) SlotConfigResponse {
	return SlotConfigResponse{
		SlotDurationMinutes: view.SlotDurationMinutes,
		BufferTimeMinutes:   view.BufferTimeMinutes,
		BookingLeadDays:     view.BookingLeadDays,
		BookingAheadDays:    view.BookingAheadDays,
	}
}
