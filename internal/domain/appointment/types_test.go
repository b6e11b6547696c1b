//go:build unit

package appointment_test

import (
	"testing"

	"appointment-server/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Transitions(t *testing.T) {
	cases := []struct {
		name    string
		from    appointment.Status
		to      appointment.Status
		allowed bool
	}{
		{"pending to confirmed", appointment.StatusPending, appointment.StatusConfirmed, true},
		{"pending to cancelled", appointment.StatusPending, appointment.StatusCancelled, true},
		{"pending to no-show", appointment.StatusPending, appointment.StatusNoShow, true},
		{"pending to completed", appointment.StatusPending, appointment.StatusCompleted, false},
		{"confirmed to cancelled", appointment.StatusConfirmed, appointment.StatusCancelled, true},
		{"confirmed to completed", appointment.StatusConfirmed, appointment.StatusCompleted, true},
		{"confirmed to no-show", appointment.StatusConfirmed, appointment.StatusNoShow, true},
		{"confirmed to pending", appointment.StatusConfirmed, appointment.StatusPending, false},
		{"completed to confirmed", appointment.StatusCompleted, appointment.StatusConfirmed, false},
		{"cancelled to cancelled", appointment.StatusCancelled, appointment.StatusCancelled, false},
		{"cancelled to pending", appointment.StatusCancelled, appointment.StatusPending, false},
		{"no-show to confirmed", appointment.StatusNoShow, appointment.StatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, appointment.StatusPending.IsTerminal())
	assert.False(t, appointment.StatusConfirmed.IsTerminal())
	assert.True(t, appointment.StatusCancelled.IsTerminal())
	assert.True(t, appointment.StatusCompleted.IsTerminal())
	assert.True(t, appointment.StatusNoShow.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, appointment.StatusPending.IsValid())
	assert.False(t, appointment.Status("BOOKED").IsValid())
	assert.False(t, appointment.Status("").IsValid())
}
