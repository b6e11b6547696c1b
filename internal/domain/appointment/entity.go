package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoServices        = errors.New("appointment requires at least one service")
	ErrDuplicateService  = errors.New("duplicate service selection")
	ErrInvalidDuration   = errors.New("service duration must be positive")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidStartTime  = errors.New("start time must be set")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotEditable       = errors.New("appointment is no longer editable")
)

// Appointment is the booking aggregate. It belongs to one client and one
// provider and owns an ordered set of service snapshots; end time and total
// price derive from those snapshots.
type Appointment struct {
	id         uuid.UUID
	clientID   uuid.UUID
	providerID uuid.UUID
	services   []ServiceSnapshot
	startTime  time.Time
	status     Status
	notes      Notes
	createdAt  time.Time
	updatedAt  time.Time
}

func NewAppointment(
	clientID, providerID uuid.UUID,
	startTime time.Time,
	services []ServiceSnapshot,
	notes Notes,
) (*Appointment, error) {
	if startTime.IsZero() {
		return nil, ErrInvalidStartTime
	}
	if err := validateServices(services); err != nil {
		return nil, err
	}

	return &Appointment{
		id:         uuid.New(),
		clientID:   clientID,
		providerID: providerID,
		services:   append([]ServiceSnapshot(nil), services...),
		startTime:  startTime,
		status:     StatusPending,
		notes:      notes,
	}, nil
}

func ReconstructAppointment(
	id, clientID, providerID uuid.UUID,
	startTime time.Time,
	services []ServiceSnapshot,
	status Status,
	notes Notes,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:         id,
		clientID:   clientID,
		providerID: providerID,
		services:   services,
		startTime:  startTime,
		status:     status,
		notes:      notes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func validateServices(services []ServiceSnapshot) error {
	if len(services) == 0 {
		return ErrNoServices
	}
	seen := make(map[uuid.UUID]struct{}, len(services))
	for _, s := range services {
		if _, dup := seen[s.ID()]; dup {
			return ErrDuplicateService
		}
		seen[s.ID()] = struct{}{}
	}
	return nil
}

// TransitionTo moves the appointment through its lifecycle. Transitions out of
// a terminal state, or any pair not in the transition table, fail.
func (a *Appointment) TransitionTo(target Status) error {
	if !target.IsValid() {
		return ErrInvalidTransition
	}
	if !a.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	a.status = target
	return nil
}

// Reschedule replaces the start time and service selection. Only PENDING and
// CONFIRMED appointments may be rescheduled.
func (a *Appointment) Reschedule(startTime time.Time, services []ServiceSnapshot) error {
	if a.status.IsTerminal() {
		return ErrNotEditable
	}
	if startTime.IsZero() {
		return ErrInvalidStartTime
	}
	if err := validateServices(services); err != nil {
		return err
	}
	a.startTime = startTime
	a.services = append([]ServiceSnapshot(nil), services...)
	return nil
}

func (a *Appointment) UpdateNotes(notes Notes) error {
	if a.status.IsTerminal() {
		return ErrNotEditable
	}
	a.notes = notes
	return nil
}

// EndTime is startTime plus the summed duration of the selected services.
func (a *Appointment) EndTime() time.Time {
	return a.startTime.Add(a.Duration())
}

func (a *Appointment) Duration() time.Duration {
	var total time.Duration
	for _, s := range a.services {
		total += s.Duration()
	}
	return total
}

func (a *Appointment) TotalPriceCents() int64 {
	var total int64
	for _, s := range a.services {
		total += s.PriceCents()
	}
	return total
}

func (a *Appointment) IsCancelled() bool {
	return a.status == StatusCancelled
}

func (a *Appointment) ID() uuid.UUID               { return a.id }
func (a *Appointment) ClientID() uuid.UUID         { return a.clientID }
func (a *Appointment) ProviderID() uuid.UUID       { return a.providerID }
func (a *Appointment) Services() []ServiceSnapshot { return a.services }
func (a *Appointment) StartTime() time.Time        { return a.startTime }
func (a *Appointment) Status() Status              { return a.status }
func (a *Appointment) Notes() Notes                { return a.notes }
func (a *Appointment) CreatedAt() time.Time        { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time        { return a.updatedAt }
