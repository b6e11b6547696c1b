//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"appointment-server/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	v, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func todPtr(t *testing.T, s string) *schedule.TimeOfDay {
	t.Helper()
	v := tod(t, s)
	return &v
}

func TestResolveDay(t *testing.T) {
	providerID := uuid.New()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // a Monday
	weekly := &schedule.WorkSchedule{
		ProviderID: providerID,
		Day:        time.Monday,
		Start:      tod(t, "09:00"),
		End:        tod(t, "17:00"),
		Active:     true,
	}

	t.Run("weekly entry resolves to its hours", func(t *testing.T) {
		interval, ok := schedule.ResolveDay(monday, weekly, nil)
		require.True(t, ok)
		assert.Equal(t, monday.Add(9*time.Hour), interval.Start)
		assert.Equal(t, monday.Add(17*time.Hour), interval.End)
	})

	t.Run("no weekly entry means no availability", func(t *testing.T) {
		_, ok := schedule.ResolveDay(monday, nil, nil)
		assert.False(t, ok)
	})

	t.Run("inactive weekly entry means no availability", func(t *testing.T) {
		inactive := *weekly
		inactive.Active = false
		_, ok := schedule.ResolveDay(monday, &inactive, nil)
		assert.False(t, ok)
	})

	t.Run("day off overrides the weekly entry", func(t *testing.T) {
		exc := &schedule.ScheduleException{
			ProviderID: providerID,
			Date:       monday,
			Type:       schedule.ExceptionDayOff,
			Reason:     "public holiday",
		}
		_, ok := schedule.ResolveDay(monday, weekly, exc)
		assert.False(t, ok)
	})

	t.Run("special hours replace the weekly hours", func(t *testing.T) {
		exc := &schedule.ScheduleException{
			ProviderID: providerID,
			Date:       monday,
			Type:       schedule.ExceptionSpecialHours,
			Start:      todPtr(t, "10:00"),
			End:        todPtr(t, "14:00"),
		}
		interval, ok := schedule.ResolveDay(monday, weekly, exc)
		require.True(t, ok)
		assert.Equal(t, monday.Add(10*time.Hour), interval.Start)
		assert.Equal(t, monday.Add(14*time.Hour), interval.End)
	})

	t.Run("malformed special hours resolve to no availability", func(t *testing.T) {
		exc := &schedule.ScheduleException{
			ProviderID: providerID,
			Date:       monday,
			Type:       schedule.ExceptionSpecialHours,
			Start:      todPtr(t, "15:00"),
			End:        todPtr(t, "10:00"),
		}
		_, ok := schedule.ResolveDay(monday, weekly, exc)
		assert.False(t, ok)

		missing := &schedule.ScheduleException{
			ProviderID: providerID,
			Date:       monday,
			Type:       schedule.ExceptionSpecialHours,
		}
		_, ok = schedule.ResolveDay(monday, weekly, missing)
		assert.False(t, ok)
	})

	t.Run("weekly entry for a different weekday does not apply", func(t *testing.T) {
		tuesdaySchedule := *weekly
		tuesdaySchedule.Day = time.Tuesday
		_, ok := schedule.ResolveDay(monday, &tuesdaySchedule, nil)
		assert.False(t, ok)
	})
}

func TestSlotConfig_Window(t *testing.T) {
	cfg := schedule.SlotConfig{
		SlotDurationMinutes: 30,
		BookingLeadDays:     1,
		BookingAheadDays:    7,
	}
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)
	w := cfg.Window(now)

	assert.Equal(t, now.AddDate(0, 0, 1), w.Earliest)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), w.Latest)

	assert.False(t, w.Allows(now.Add(time.Hour)), "inside lead time")
	assert.True(t, w.Allows(now.AddDate(0, 0, 2)))
	assert.False(t, w.Allows(now.AddDate(0, 0, 9)), "beyond horizon")

	assert.True(t, w.AllowsDate(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.AllowsDate(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.AllowsDate(time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)))
}

func TestSlotConfig_Validate(t *testing.T) {
	valid := schedule.SlotConfig{SlotDurationMinutes: 30, BufferTimeMinutes: 5, BookingLeadDays: 0, BookingAheadDays: 30}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name string
		cfg  schedule.SlotConfig
	}{
		{"zero slot duration", schedule.SlotConfig{SlotDurationMinutes: 0, BookingAheadDays: 30}},
		{"negative buffer", schedule.SlotConfig{SlotDurationMinutes: 30, BufferTimeMinutes: -1, BookingAheadDays: 30}},
		{"lead beyond ahead", schedule.SlotConfig{SlotDurationMinutes: 30, BookingLeadDays: 10, BookingAheadDays: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.cfg.Validate(), schedule.ErrInvalidSlotCfg)
		})
	}
}

func TestScheduleException_Validate(t *testing.T) {
	assert.NoError(t, schedule.ScheduleException{Type: schedule.ExceptionDayOff}.Validate())

	special := schedule.ScheduleException{
		Type:  schedule.ExceptionSpecialHours,
		Start: todPtr(t, "10:00"),
		End:   todPtr(t, "14:00"),
	}
	assert.NoError(t, special.Validate())

	assert.ErrorIs(t, schedule.ScheduleException{Type: schedule.ExceptionSpecialHours}.Validate(), schedule.ErrInvalidTimeOfDay)

	inverted := schedule.ScheduleException{
		Type:  schedule.ExceptionSpecialHours,
		Start: todPtr(t, "14:00"),
		End:   todPtr(t, "10:00"),
	}
	assert.ErrorIs(t, inverted.Validate(), schedule.ErrInvalidHours)
}
