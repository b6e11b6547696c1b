package availability

import (
	"time"

	"github.com/google/uuid"
)

// BusyInterval is an existing non-cancelled appointment's occupied window.
// Cancelled appointments must not be passed in; they never block availability.
type BusyInterval struct {
	AppointmentID uuid.UUID
	Start         time.Time
	End           time.Time
}

// MarkConflicts returns the candidates with Available cleared for every slot
// that overlaps a busy interval padded by buffer on both sides. The buffer is
// the provider's turnaround time around real bookings, so it pads the
// existing appointment only, never the candidate. excludeID skips one
// appointment, used when revalidating a reschedule of that same appointment.
// Output cardinality always equals input cardinality.
func MarkConflicts(candidates []Slot, busy []BusyInterval, buffer time.Duration, excludeID *uuid.UUID) []Slot {
	out := make([]Slot, len(candidates))
	for i, c := range candidates {
		out[i] = c
		if c.Available && overlapsAny(c.Start, c.End, busy, buffer, excludeID) {
			out[i].Available = false
		}
	}
	return out
}

// IsFree reports whether the exact window [start, end) is clear of every
// padded busy interval. Write commands use it for the commit-time re-check.
func IsFree(start, end time.Time, busy []BusyInterval, buffer time.Duration, excludeID *uuid.UUID) bool {
	return !overlapsAny(start, end, busy, buffer, excludeID)
}

func overlapsAny(start, end time.Time, busy []BusyInterval, buffer time.Duration, excludeID *uuid.UUID) bool {
	for _, b := range busy {
		if excludeID != nil && b.AppointmentID == *excludeID {
			continue
		}
		// Half-open overlap against the padded interval
		// [b.Start-buffer, b.End+buffer).
		if start.Before(b.End.Add(buffer)) && b.Start.Add(-buffer).Before(end) {
			return true
		}
	}
	return false
}
