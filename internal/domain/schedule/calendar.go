package schedule

import "time"

// DayInterval is the resolved open working window for one provider-date.
type DayInterval struct {
	Start time.Time
	End   time.Time
}

func (i DayInterval) Contains(start, end time.Time) bool {
	return !start.Before(i.Start) && !end.After(i.End)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ResolveDay merges the weekly schedule entry with the date-specific
// exception into the effective working interval for the date. The exception
// always wins: DAY_OFF yields no availability regardless of the weekly entry,
// SPECIAL_HOURS replaces the weekly hours. Stored data is expected to be
// validated at write time; malformed intervals resolve to no availability
// rather than panicking.
func ResolveDay(date time.Time, weekly *WorkSchedule, exc *ScheduleException) (DayInterval, bool) {
	if exc != nil {
		switch exc.Type {
		case ExceptionDayOff:
			return DayInterval{}, false
		case ExceptionSpecialHours:
			if exc.Start == nil || exc.End == nil || !exc.Start.Before(*exc.End) {
				return DayInterval{}, false
			}
			return DayInterval{Start: exc.Start.On(date), End: exc.End.On(date)}, true
		default:
			return DayInterval{}, false
		}
	}

	if weekly == nil || !weekly.Active || weekly.Day != date.Weekday() {
		return DayInterval{}, false
	}
	if !weekly.Start.Before(weekly.End) {
		return DayInterval{}, false
	}
	return DayInterval{Start: weekly.Start.On(date), End: weekly.End.On(date)}, true
}

// BookingWindow bounds the instants at which a slot may start given "now" and
// the configured lead/ahead days. Earliest is inclusive, Latest exclusive:
// the horizon covers every date up to and including now + aheadDays.
type BookingWindow struct {
	Earliest time.Time
	Latest   time.Time
}

func (c SlotConfig) Window(now time.Time) BookingWindow {
	return BookingWindow{
		Earliest: now.AddDate(0, 0, c.BookingLeadDays),
		Latest:   DateOf(now).AddDate(0, 0, c.BookingAheadDays+1),
	}
}

func (w BookingWindow) Allows(start time.Time) bool {
	return !start.Before(w.Earliest) && start.Before(w.Latest)
}

// AllowsDate reports whether any part of the date is inside the window, used
// to short-circuit availability queries for out-of-horizon dates.
func (w BookingWindow) AllowsDate(date time.Time) bool {
	dayStart := DateOf(date)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return dayEnd.After(w.Earliest) && dayStart.Before(w.Latest)
}
