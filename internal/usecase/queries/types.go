package queries

import (
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/availability"
	"appointment-server/internal/domain/schedule"

	"github.com/google/uuid"
)

type TimeSlotView struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Available       bool
}

type DayAvailabilityView struct {
	ProviderID uuid.UUID
	Date       string
	Open       bool
	Slots      []TimeSlotView
}

type ServiceLineView struct {
	ServiceID       uuid.UUID
	Name            string
	DurationMinutes int
	PriceCents      int64
}

type AppointmentView struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ProviderID      uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	Status          string
	Services        []ServiceLineView
	TotalPriceCents int64
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewAppointmentView(appt *appointment.Appointment) AppointmentView {
	services := make([]ServiceLineView, 0, len(appt.Services()))
	for _, s := range appt.Services() {
		services = append(services, ServiceLineView{
			ServiceID:       s.ID(),
			Name:            s.Name(),
			DurationMinutes: s.DurationMinutes(),
			PriceCents:      s.PriceCents(),
		})
	}
	return AppointmentView{
		ID:              appt.ID(),
		ClientID:        appt.ClientID(),
		ProviderID:      appt.ProviderID(),
		StartTime:       appt.StartTime(),
		EndTime:         appt.EndTime(),
		Status:          string(appt.Status()),
		Services:        services,
		TotalPriceCents: appt.TotalPriceCents(),
		Notes:           appt.Notes().String(),
		CreatedAt:       appt.CreatedAt(),
		UpdatedAt:       appt.UpdatedAt(),
	}
}

func NewAppointmentViews(appts []*appointment.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appts))
	for _, appt := range appts {
		views = append(views, NewAppointmentView(appt))
	}
	return views
}

type WorkScheduleView struct {
	Day    string
	Start  string
	End    string
	Active bool
}

type WeeklyScheduleView struct {
	ProviderID uuid.UUID
	Days       []WorkScheduleView
}

type ScheduleExceptionView struct {
	ID     uuid.UUID
	Date   string
	Type   string
	Start  *string
	End    *string
	Reason string
}

func NewScheduleExceptionView(exc schedule.ScheduleException) ScheduleExceptionView {
	view := ScheduleExceptionView{
		ID:     exc.ID,
		Date:   exc.Date.Format("2006-01-02"),
		Type:   string(exc.Type),
		Reason: exc.Reason,
	}
	if exc.Start != nil {
		s := exc.Start.String()
		view.Start = &s
	}
	if exc.End != nil {
		e := exc.End.String()
		view.End = &e
	}
	return view
}

type SlotConfigView struct {
	SlotDurationMinutes int
	BufferTimeMinutes   int
	BookingLeadDays     int
	BookingAheadDays    int
}

func NewSlotConfigView(cfg schedule.SlotConfig) SlotConfigView {
	return SlotConfigView{
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		BufferTimeMinutes:   cfg.BufferTimeMinutes,
		BookingLeadDays:     cfg.BookingLeadDays,
		BookingAheadDays:    cfg.BookingAheadDays,
	}
}

func newTimeSlotViews(slots []availability.Slot) []TimeSlotView {
	views := make([]TimeSlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, TimeSlotView{
			StartTime:       s.Start,
			EndTime:         s.End,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}
	return views
}
