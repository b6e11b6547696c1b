package shared

import (
	"context"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/availability"
	"appointment-server/internal/domain/schedule"

	"github.com/google/uuid"
)

// Actor is the authenticated caller on whose behalf a command runs. The
// engine never authenticates; the HTTP layer extracts the actor from the
// verified token and authorization decisions are delegated to AuthZ.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// ProviderRepository stores provider schedules, exceptions and slot
// configuration. Lookup methods return nil (not an error) when no row exists;
// absence is a normal scheduling outcome.
type ProviderRepository interface {
	Exists(ctx context.Context, providerID uuid.UUID) (bool, error)
	GetWorkSchedule(ctx context.Context, providerID uuid.UUID, day time.Weekday) (*schedule.WorkSchedule, error)
	ListWorkSchedules(ctx context.Context, providerID uuid.UUID) ([]schedule.WorkSchedule, error)
	SetWorkSchedule(ctx context.Context, providerID uuid.UUID, entries []schedule.WorkSchedule) error
	GetException(ctx context.Context, providerID uuid.UUID, date time.Time) (*schedule.ScheduleException, error)
	ExceptionsInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]schedule.ScheduleException, error)
	PutException(ctx context.Context, exc schedule.ScheduleException) (*schedule.ScheduleException, error)
	DeleteException(ctx context.Context, providerID, exceptionID uuid.UUID) error
	GetSlotConfig(ctx context.Context, providerID uuid.UUID) (*schedule.SlotConfig, error)
	UpsertSlotConfig(ctx context.Context, providerID uuid.UUID, cfg schedule.SlotConfig) error
}

// ServiceRecord is the catalog row used to build booking-time snapshots.
type ServiceRecord struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	Name            string
	DurationMinutes int
	PriceCents      int64
	Active          bool
}

type ServiceRepository interface {
	// GetByIDs returns the records for the ids that exist; missing ids are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]ServiceRecord, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *appointment.Appointment) error
	Update(ctx context.Context, appt *appointment.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// FindOverlapping returns the occupied windows of non-cancelled
	// appointments intersecting [from, to) for the provider.
	FindOverlapping(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.BusyInterval, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*appointment.Appointment, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*appointment.Appointment, error)
	ListByDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error)
}

// AuthZ is the identity/role collaborator. The engine asks before every
// administrative mutation; the policy itself lives outside the core.
type AuthZ interface {
	CanMutateSchedule(ctx context.Context, actor Actor, providerID uuid.UUID) bool
	CanMutateAppointmentStatus(ctx context.Context, actor Actor, appt *appointment.Appointment) bool
}
