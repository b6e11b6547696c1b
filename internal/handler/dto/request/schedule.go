package request

import (
	"strings"
	"time"

	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/commands"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

type WorkScheduleEntryRequest struct {
	Day    string `json:"day" binding:"required"`
	Start  string `json:"start" binding:"required"`
	End    string `json:"end" binding:"required"`
	Active bool   `json:"active"`
}

type SetWorkScheduleRequest struct {
	Days []WorkScheduleEntryRequest `json:"days" binding:"required,min=1"`
}

func (r SetWorkScheduleRequest) ToInput() ([]commands.SetWorkScheduleInput, error) {
	in := make([]commands.SetWorkScheduleInput, 0, len(r.Days))
	for _, entry := range r.Days {
		day, ok := weekdays[strings.ToLower(entry.Day)]
		if !ok {
			return nil, errs.Newf("unknown weekday %q", entry.Day)
		}
		start, err := schedule.ParseTimeOfDay(entry.Start)
		if err != nil {
			return nil, err
		}
		end, err := schedule.ParseTimeOfDay(entry.End)
		if err != nil {
			return nil, err
		}
		in = append(in, commands.SetWorkScheduleInput{
			Day:    day,
			Start:  start,
			End:    end,
			Active: entry.Active,
		})
	}
	return in, nil
}

type PutExceptionRequest struct {
	Date   string  `json:"date" binding:"required"`
	Type   string  `json:"type" binding:"required"`
	Start  *string `json:"start,omitempty"`
	End    *string `json:"end,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

func (r PutExceptionRequest) ToInput() (commands.PutExceptionInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return commands.PutExceptionInput{}, errs.Newf("invalid date %q, expected YYYY-MM-DD", r.Date)
	}

	in := commands.PutExceptionInput{
		Date:   date,
		Type:   schedule.ExceptionType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Reason: strings.TrimSpace(r.Reason),
	}
	if r.Start != nil {
		start, err := schedule.ParseTimeOfDay(*r.Start)
		if err != nil {
			return commands.PutExceptionInput{}, err
		}
		in.Start = &start
	}
	if r.End != nil {
		end, err := schedule.ParseTimeOfDay(*r.End)
		if err != nil {
			return commands.PutExceptionInput{}, err
		}
		in.End = &end
	}
	return in, nil
}

type SlotConfigRequest struct {
	SlotDurationMinutes int `json:"slot_duration_minutes" binding:"required,min=1"`
	BufferTimeMinutes   int `json:"buffer_time_minutes" binding:"min=0"`
	BookingLeadDays     int `json:"booking_lead_days" binding:"min=0"`
	BookingAheadDays    int `json:"booking_ahead_days" binding:"required,min=1"`
}

func (r SlotConfigRequest) ToConfig() schedule.SlotConfig {
	return schedule.SlotConfig{
		SlotDurationMinutes: r.SlotDurationMinutes,
		BufferTimeMinutes:   r.BufferTimeMinutes,
		BookingLeadDays:     r.BookingLeadDays,
		BookingAheadDays:    r.BookingAheadDays,
	}
}
