package availability

import "time"

// Slot is a candidate bookable window on the provider's slot grid. Slots are
// transient query output and are never persisted.
type Slot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	Available       bool
}

// Generate walks the slot grid over [windowStart, windowEnd): starting at
// windowStart it steps by step, yielding a candidate of length duration while
// the candidate still fits inside the window. Candidates starting before
// notBefore are dropped (insufficient lead time). The result is finite and
// recomputed from scratch on every call; the caller is responsible for not
// asking about dates beyond the booking horizon.
func Generate(windowStart, windowEnd time.Time, step, duration time.Duration, notBefore time.Time) []Slot {
	if step <= 0 || duration <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var slots []Slot
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if t.Before(notBefore) {
			continue
		}
		slots = append(slots, Slot{
			Start:           t,
			End:             t.Add(duration),
			DurationMinutes: int(duration / time.Minute),
			Available:       true,
		})
	}
	return slots
}
