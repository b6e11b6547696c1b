//go:build unit

package availability_test

import (
	"testing"
	"time"

	"appointment-server/internal/domain/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SpecialHoursGrid(t *testing.T) {
	// Monday with special hours 10:00-14:00, 30-minute grid, 30-minute
	// requested duration: exactly 10:00 through 13:30.
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(10 * time.Hour)
	windowEnd := day.Add(14 * time.Hour)

	slots := availability.Generate(windowStart, windowEnd, 30*time.Minute, 30*time.Minute, day)
	require.Len(t, slots, 8)

	for i, s := range slots {
		expected := windowStart.Add(time.Duration(i) * 30 * time.Minute)
		assert.Equal(t, expected, s.Start)
		assert.Equal(t, expected.Add(30*time.Minute), s.End)
		assert.Equal(t, 30, s.DurationMinutes)
		assert.True(t, s.Available)
	}
}

func TestGenerate_SlotsStayInsideInterval(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(9 * time.Hour)
	windowEnd := day.Add(17 * time.Hour)

	// 45-minute requested duration on a 30-minute grid: the window tested for
	// conflicts is longer than the grid step.
	slots := availability.Generate(windowStart, windowEnd, 30*time.Minute, 45*time.Minute, day)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.False(t, s.Start.Before(windowStart))
		assert.False(t, s.End.After(windowEnd))
	}
	// The grid steps from 09:00, so the last 45-minute candidate that fits
	// starts at 16:00 (16:30 would run past 17:00).
	last := slots[len(slots)-1]
	assert.Equal(t, day.Add(16*time.Hour), last.Start)
	assert.Equal(t, day.Add(16*time.Hour+45*time.Minute), last.End)
}

func TestGenerate_DropsSlotsBeforeLeadCutoff(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(9 * time.Hour)
	windowEnd := day.Add(10 * time.Hour)
	notBefore := day.Add(9*time.Hour + 31*time.Minute)

	slots := availability.Generate(windowStart, windowEnd, 15*time.Minute, 15*time.Minute, notBefore)
	require.Len(t, slots, 1)
	assert.Equal(t, day.Add(9*time.Hour+45*time.Minute), slots[0].Start)
}

func TestGenerate_DegenerateInputs(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, availability.Generate(day, day, 30*time.Minute, 30*time.Minute, day))
	assert.Nil(t, availability.Generate(day.Add(time.Hour), day, 30*time.Minute, 30*time.Minute, day))
	assert.Nil(t, availability.Generate(day, day.Add(time.Hour), 0, 30*time.Minute, day))
	assert.Nil(t, availability.Generate(day, day.Add(time.Hour), 30*time.Minute, 0, day))
	// Requested duration longer than the whole window.
	assert.Nil(t, availability.Generate(day, day.Add(time.Hour), 30*time.Minute, 2*time.Hour, day))
}
