package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ServiceSnapshot captures a service's duration and price as they were at
// booking time. Appointments hold snapshots, not live service references, so
// later catalog edits never alter historical totals.
type ServiceSnapshot struct {
	id              uuid.UUID
	name            string
	durationMinutes int
	priceCents      int64
}

func NewServiceSnapshot(id uuid.UUID, name string, durationMinutes int, priceCents int64) (ServiceSnapshot, error) {
	if id == uuid.Nil {
		return ServiceSnapshot{}, errors.New("service id must be set")
	}
	if durationMinutes <= 0 {
		return ServiceSnapshot{}, ErrInvalidDuration
	}
	if priceCents < 0 {
		return ServiceSnapshot{}, ErrNegativePrice
	}
	return ServiceSnapshot{
		id:              id,
		name:            name,
		durationMinutes: durationMinutes,
		priceCents:      priceCents,
	}, nil
}

func (s ServiceSnapshot) ID() uuid.UUID        { return s.id }
func (s ServiceSnapshot) Name() string         { return s.name }
func (s ServiceSnapshot) DurationMinutes() int { return s.durationMinutes }
func (s ServiceSnapshot) PriceCents() int64    { return s.priceCents }

func (s ServiceSnapshot) Duration() time.Duration {
	return time.Duration(s.durationMinutes) * time.Minute
}

type Notes struct {
	value string
}

func NewNotes(value string) Notes {
	return Notes{value: value}
}

func (n Notes) String() string {
	return n.value
}

func (n Notes) IsEmpty() bool {
	return n.value == ""
}
