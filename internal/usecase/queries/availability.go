package queries

import (
	"context"
	"time"

	"appointment-server/internal/domain/availability"
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/clock"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	GetDaySlots(ctx context.Context, providerID uuid.UUID, date time.Time, durationMinutes int) (*DayAvailabilityView, error)
}

type availabilityQueriesImpl struct {
	providers    shared.ProviderRepository
	appointments shared.AppointmentRepository
	clock        clock.Clock
	defaultCfg   schedule.SlotConfig
}

func NewAvailabilityQueries(
	providers shared.ProviderRepository,
	appointments shared.AppointmentRepository,
	clk clock.Clock,
	defaultCfg schedule.SlotConfig,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		providers:    providers,
		appointments: appointments,
		clock:        clk,
		defaultCfg:   defaultCfg,
	}
}

// GetDaySlots resolves the provider's working interval for the date and
// returns the fixed slot grid with conflicts marked. A closed day or a date
// outside the booking horizon yields an empty grid rather than an error.
// durationMinutes sizes each candidate slot; zero falls back to the grid step.
func (a *availabilityQueriesImpl) GetDaySlots(ctx context.Context, providerID uuid.UUID, date time.Time, durationMinutes int) (*DayAvailabilityView, error) {
	if durationMinutes < 0 {
		return nil, errs.Mark(errs.New("requested duration must not be negative"), errs.ErrValidation)
	}
	ok, err := a.providers.Exists(ctx, providerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return nil, errs.ErrProviderNotFound
	}

	day := schedule.DateOf(date)
	view := &DayAvailabilityView{
		ProviderID: providerID,
		Date:       day.Format("2006-01-02"),
		Slots:      []TimeSlotView{},
	}

	cfg, err := a.slotConfig(ctx, providerID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	window := cfg.Window(now)
	if !window.AllowsDate(day) {
		return view, nil
	}

	weekly, err := a.providers.GetWorkSchedule(ctx, providerID, day.Weekday())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	exc, err := a.providers.GetException(ctx, providerID, day)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	interval, open := schedule.ResolveDay(day, weekly, exc)
	if !open {
		return view, nil
	}
	view.Open = true

	slotDur := cfg.SlotDuration()
	reqDur := slotDur
	if durationMinutes > 0 {
		reqDur = time.Duration(durationMinutes) * time.Minute
	}
	candidates := availability.Generate(interval.Start, interval.End, slotDur, reqDur, window.Earliest)
	if len(candidates) == 0 {
		return view, nil
	}

	buffer := cfg.Buffer()
	busy, err := a.appointments.FindOverlapping(
		ctx,
		providerID,
		interval.Start.Add(-buffer),
		interval.End.Add(buffer),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view.Slots = newTimeSlotViews(availability.MarkConflicts(candidates, busy, buffer, nil))
	return view, nil
}

func (a *availabilityQueriesImpl) slotConfig(ctx context.Context, providerID uuid.UUID) (schedule.SlotConfig, error) {
	cfg, err := a.providers.GetSlotConfig(ctx, providerID)
	if err != nil {
		return schedule.SlotConfig{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if cfg == nil {
		return a.defaultCfg, nil
	}
	return *cfg, nil
}
