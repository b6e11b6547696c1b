package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidHours     = errors.New("start time must be before end time")
	ErrInvalidSlotCfg   = errors.New("invalid slot configuration")
)

// TimeOfDay is a wall-clock time without a date, stored as minutes since
// midnight.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// On anchors the time of day to a calendar date, in the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// WorkSchedule is a provider's recurring weekly availability for one day of
// the week. At most one entry exists per (provider, day of week).
type WorkSchedule struct {
	ProviderID uuid.UUID
	Day        time.Weekday
	Start      TimeOfDay
	End        TimeOfDay
	Active     bool
}

func (w WorkSchedule) Validate() error {
	if !w.Start.Before(w.End) {
		return ErrInvalidHours
	}
	return nil
}

type ExceptionType string

const (
	ExceptionDayOff       ExceptionType = "DAY_OFF"
	ExceptionSpecialHours ExceptionType = "SPECIAL_HOURS"
)

func (t ExceptionType) IsValid() bool {
	return t == ExceptionDayOff || t == ExceptionSpecialHours
}

// ScheduleException overrides the weekly schedule for one exact date. DAY_OFF
// removes availability entirely; SPECIAL_HOURS replaces the weekly hours with
// its own. Modeled as a tagged variant: the time fields are only set for
// SPECIAL_HOURS.
type ScheduleException struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Date       time.Time // midnight of the affected date
	Type       ExceptionType
	Start      *TimeOfDay
	End        *TimeOfDay
	Reason     string
}

func (e ScheduleException) Validate() error {
	switch e.Type {
	case ExceptionDayOff:
		return nil
	case ExceptionSpecialHours:
		if e.Start == nil || e.End == nil {
			return ErrInvalidTimeOfDay
		}
		if !e.Start.Before(*e.End) {
			return ErrInvalidHours
		}
		return nil
	default:
		return errors.New("unknown exception type")
	}
}

// SlotConfig controls slot granularity and the bookable horizon for a
// provider.
type SlotConfig struct {
	SlotDurationMinutes int
	BufferTimeMinutes   int
	BookingLeadDays     int
	BookingAheadDays    int
}

func (c SlotConfig) Validate() error {
	if c.SlotDurationMinutes <= 0 {
		return ErrInvalidSlotCfg
	}
	if c.BufferTimeMinutes < 0 || c.BookingLeadDays < 0 || c.BookingAheadDays < 0 {
		return ErrInvalidSlotCfg
	}
	if c.BookingLeadDays > c.BookingAheadDays {
		return ErrInvalidSlotCfg
	}
	return nil
}

func (c SlotConfig) SlotDuration() time.Duration {
	return time.Duration(c.SlotDurationMinutes) * time.Minute
}

func (c SlotConfig) Buffer() time.Duration {
	return time.Duration(c.BufferTimeMinutes) * time.Minute
}
