package queries

import (
	"context"
	"time"

	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	GetWeeklySchedule(ctx context.Context, providerID uuid.UUID) (*WeeklyScheduleView, error)
	ListExceptions(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]ScheduleExceptionView, error)
	GetSlotConfig(ctx context.Context, providerID uuid.UUID) (*SlotConfigView, error)
}

type scheduleQueriesImpl struct {
	providers  shared.ProviderRepository
	defaultCfg schedule.SlotConfig
}

func NewScheduleQueries(providers shared.ProviderRepository, defaultCfg schedule.SlotConfig) ScheduleQueries {
	return &scheduleQueriesImpl{providers: providers, defaultCfg: defaultCfg}
}

func (q *scheduleQueriesImpl) GetWeeklySchedule(ctx context.Context, providerID uuid.UUID) (*WeeklyScheduleView, error) {
	if err := q.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	schedules, err := q.providers.ListWorkSchedules(ctx, providerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	days := make([]WorkScheduleView, 0, len(schedules))
	for _, ws := range schedules {
		days = append(days, WorkScheduleView{
			Day:    ws.Day.String(),
			Start:  ws.Start.String(),
			End:    ws.End.String(),
			Active: ws.Active,
		})
	}
	return &WeeklyScheduleView{ProviderID: providerID, Days: days}, nil
}

func (q *scheduleQueriesImpl) ListExceptions(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]ScheduleExceptionView, error) {
	if err := q.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, errs.Mark(errs.New("date range end precedes start"), errs.ErrValidation)
	}

	exceptions, err := q.providers.ExceptionsInRange(ctx, providerID, schedule.DateOf(from), schedule.DateOf(to))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]ScheduleExceptionView, 0, len(exceptions))
	for _, exc := range exceptions {
		views = append(views, NewScheduleExceptionView(exc))
	}
	return views, nil
}

func (q *scheduleQueriesImpl) GetSlotConfig(ctx context.Context, providerID uuid.UUID) (*SlotConfigView, error) {
	if err := q.requireProvider(ctx, providerID); err != nil {
		return nil, err
	}

	cfg, err := q.providers.GetSlotConfig(ctx, providerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if cfg == nil {
		cfg = &q.defaultCfg
	}
	view := NewSlotConfigView(*cfg)
	return &view, nil
}

func (q *scheduleQueriesImpl) requireProvider(ctx context.Context, providerID uuid.UUID) error {
	ok, err := q.providers.Exists(ctx, providerID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return errs.ErrProviderNotFound
	}
	return nil
}
