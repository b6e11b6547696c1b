package commands

import (
	"context"
	"strings"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/availability"
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/infra"
	"appointment-server/internal/pkg/clock"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/pkg/lock"
	"appointment-server/internal/pkg/patch"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAppointmentInput struct {
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	StartTime  time.Time
	ServiceIDs []uuid.UUID
	Notes      *string
}

type UpdateAppointmentInput struct {
	StartTime  *time.Time
	ServiceIDs []uuid.UUID // nil means unchanged
	Notes      *string
	Status     *appointment.Status
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*appointment.Appointment, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateAppointmentInput) (*appointment.Appointment, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appointment.Appointment, error)
}

type bookingCommandsImpl struct {
	providers    shared.ProviderRepository
	services     shared.ServiceRepository
	appointments shared.AppointmentRepository
	authz        shared.AuthZ
	locks        *lock.Keyed
	clock        clock.Clock
	defaultCfg   schedule.SlotConfig
}

func NewBookingCommands(
	providers shared.ProviderRepository,
	services shared.ServiceRepository,
	appointments shared.AppointmentRepository,
	authz shared.AuthZ,
	locks *lock.Keyed,
	clk clock.Clock,
	defaultCfg schedule.SlotConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		providers:    providers,
		services:     services,
		appointments: appointments,
		authz:        authz,
		locks:        locks,
		clock:        clk,
		defaultCfg:   defaultCfg,
	}
}

func (b *bookingCommandsImpl) Create(ctx context.Context, in CreateAppointmentInput) (*appointment.Appointment, error) {
	ok, err := b.providers.Exists(ctx, in.ProviderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.ErrProviderNotFound
	}

	snaps, err := b.resolveServices(ctx, in.ProviderID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	notes := appointment.NewNotes(strings.TrimSpace(patch.Coalesce(in.Notes, "")))
	appt, err := appointment.NewAppointment(in.ClientID, in.ProviderID, in.StartTime, snaps, notes)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	cfg, err := b.slotConfig(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	now := b.clock.Now()

	if err := b.validatePlacement(ctx, appt, cfg, now); err != nil {
		return nil, err
	}

	key := bookingLockKey(in.ProviderID, appt.StartTime())
	b.locks.Lock(key)
	defer b.locks.Unlock(key)

	// Authoritative conflict check under the provider-date lock: whichever
	// request holds the lock first wins, the other sees the fresh booking.
	if err := b.checkConflicts(ctx, appt, cfg, nil); err != nil {
		return nil, err
	}

	if err := b.appointments.Create(ctx, appt); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrBookingConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return appt, nil
}

func (b *bookingCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateAppointmentInput) (*appointment.Appointment, error) {
	appt, err := b.getAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.StartTime != nil || in.ServiceIDs != nil {
		if appt.Status() != appointment.StatusPending && appt.Status() != appointment.StatusConfirmed {
			return nil, errs.Mark(
				errs.Newf("appointment in status %s cannot be rescheduled", appt.Status()),
				errs.ErrInvalidTransition,
			)
		}

		snaps := appt.Services()
		if in.ServiceIDs != nil {
			snaps, err = b.resolveServices(ctx, appt.ProviderID(), in.ServiceIDs)
			if err != nil {
				return nil, err
			}
		}
		newStart := patch.Coalesce(in.StartTime, appt.StartTime())

		if err := appt.Reschedule(newStart, snaps); err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}

		cfg, err := b.slotConfig(ctx, appt.ProviderID())
		if err != nil {
			return nil, err
		}
		if err := b.validatePlacement(ctx, appt, cfg, b.clock.Now()); err != nil {
			return nil, err
		}

		key := bookingLockKey(appt.ProviderID(), appt.StartTime())
		b.locks.Lock(key)
		defer b.locks.Unlock(key)

		excludeID := appt.ID()
		if err := b.checkConflicts(ctx, appt, cfg, &excludeID); err != nil {
			return nil, err
		}
	}

	if in.Notes != nil {
		notes := appointment.NewNotes(strings.TrimSpace(*in.Notes))
		if err := appt.UpdateNotes(notes); err != nil {
			return nil, errs.Mark(
				errs.Newf("appointment in status %s cannot be edited", appt.Status()),
				errs.ErrInvalidTransition,
			)
		}
	}

	if in.Status != nil {
		if !b.authz.CanMutateAppointmentStatus(ctx, actor, appt) {
			return nil, errs.ErrPermissionDenied
		}
		from := appt.Status()
		if err := appt.TransitionTo(*in.Status); err != nil {
			return nil, errs.Mark(
				errs.Newf("cannot transition appointment from %s to %s", from, *in.Status),
				errs.ErrInvalidTransition,
			)
		}
	}

	if err := b.appointments.Update(ctx, appt); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.ErrBookingConflict
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return appt, nil
}

// Cancel is a status-only update; cancelling an already-cancelled appointment
// is an error, not a no-op, so repeated cancellations stay visible in audits.
func (b *bookingCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*appointment.Appointment, error) {
	cancelled := appointment.StatusCancelled
	return b.Update(ctx, actor, id, UpdateAppointmentInput{Status: &cancelled})
}

func (b *bookingCommandsImpl) getAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	appt, err := b.appointments.GetByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return appt, nil
}

func (b *bookingCommandsImpl) resolveServices(ctx context.Context, providerID uuid.UUID, ids []uuid.UUID) ([]appointment.ServiceSnapshot, error) {
	if len(ids) == 0 {
		return nil, errs.Mark(errs.New("at least one service must be selected"), errs.ErrValidation)
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, errs.Mark(errs.Newf("service %s selected more than once", id), errs.ErrValidation)
		}
		seen[id] = struct{}{}
	}

	records, err := b.services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	byID := make(map[uuid.UUID]shared.ServiceRecord, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	snaps := make([]appointment.ServiceSnapshot, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, errs.ErrServiceNotFound
		}
		if rec.ProviderID != providerID {
			return nil, errs.Mark(errs.Newf("service %s does not belong to the provider", id), errs.ErrValidation)
		}
		if !rec.Active {
			return nil, errs.Mark(errs.Newf("service %s is not bookable", id), errs.ErrValidation)
		}
		snap, err := appointment.NewServiceSnapshot(rec.ID, rec.Name, rec.DurationMinutes, rec.PriceCents)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (b *bookingCommandsImpl) slotConfig(ctx context.Context, providerID uuid.UUID) (schedule.SlotConfig, error) {
	cfg, err := b.providers.GetSlotConfig(ctx, providerID)
	if err != nil {
		return schedule.SlotConfig{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if cfg == nil {
		return b.defaultCfg, nil
	}
	return *cfg, nil
}

// validatePlacement checks the requested window against the booking horizon,
// the provider's resolved day interval and the slot grid.
func (b *bookingCommandsImpl) validatePlacement(ctx context.Context, appt *appointment.Appointment, cfg schedule.SlotConfig, now time.Time) error {
	window := cfg.Window(now)
	if !window.Allows(appt.StartTime()) {
		return errs.Mark(
			errs.Newf("start time %s outside bookable window [%s, %s)",
				appt.StartTime().Format(time.RFC3339),
				window.Earliest.Format(time.RFC3339),
				window.Latest.Format(time.RFC3339)),
			errs.ErrSchedulingWindow,
		)
	}

	date := schedule.DateOf(appt.StartTime())
	weekly, err := b.providers.GetWorkSchedule(ctx, appt.ProviderID(), date.Weekday())
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	exc, err := b.providers.GetException(ctx, appt.ProviderID(), date)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	interval, open := schedule.ResolveDay(date, weekly, exc)
	if !open {
		return errs.Mark(
			errs.Newf("provider has no availability on %s", date.Format("2006-01-02")),
			errs.ErrSchedulingWindow,
		)
	}
	if !interval.Contains(appt.StartTime(), appt.EndTime()) {
		return errs.Mark(
			errs.Newf("requested window outside working hours %s-%s",
				interval.Start.Format("15:04"), interval.End.Format("15:04")),
			errs.ErrSchedulingWindow,
		)
	}

	for _, slot := range availability.Generate(interval.Start, interval.End, cfg.SlotDuration(), appt.Duration(), window.Earliest) {
		if slot.Start.Equal(appt.StartTime()) {
			return nil
		}
	}
	return errs.Mark(errs.New("start time is not on the slot grid"), errs.ErrSchedulingWindow)
}

func (b *bookingCommandsImpl) checkConflicts(ctx context.Context, appt *appointment.Appointment, cfg schedule.SlotConfig, excludeID *uuid.UUID) error {
	buffer := cfg.Buffer()
	busy, err := b.appointments.FindOverlapping(
		ctx,
		appt.ProviderID(),
		appt.StartTime().Add(-buffer),
		appt.EndTime().Add(buffer),
	)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !availability.IsFree(appt.StartTime(), appt.EndTime(), busy, buffer, excludeID) {
		return errs.ErrBookingConflict
	}
	return nil
}

func bookingLockKey(providerID uuid.UUID, start time.Time) string {
	return providerID.String() + ":" + schedule.DateOf(start).Format("2006-01-02")
}
