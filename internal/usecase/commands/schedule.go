package commands

import (
	"context"
	"time"

	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/infra"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetWorkScheduleInput struct {
	Day    time.Weekday
	Start  schedule.TimeOfDay
	End    schedule.TimeOfDay
	Active bool
}

type PutExceptionInput struct {
	Date   time.Time
	Type   schedule.ExceptionType
	Start  *schedule.TimeOfDay
	End    *schedule.TimeOfDay
	Reason string
}

type ScheduleCommands interface {
	SetWorkSchedule(ctx context.Context, actor shared.Actor, providerID uuid.UUID, in []SetWorkScheduleInput) ([]schedule.WorkSchedule, error)
	PutException(ctx context.Context, actor shared.Actor, providerID uuid.UUID, in PutExceptionInput) (*schedule.ScheduleException, error)
	DeleteException(ctx context.Context, actor shared.Actor, providerID, exceptionID uuid.UUID) error
	UpdateSlotConfig(ctx context.Context, actor shared.Actor, providerID uuid.UUID, cfg schedule.SlotConfig) error
}

type scheduleCommandsImpl struct {
	providers shared.ProviderRepository
	authz     shared.AuthZ
}

func NewScheduleCommands(providers shared.ProviderRepository, authz shared.AuthZ) ScheduleCommands {
	return &scheduleCommandsImpl{providers: providers, authz: authz}
}

// SetWorkSchedule replaces the provider's entry for each submitted weekday;
// weekdays not submitted keep their current hours.
func (s *scheduleCommandsImpl) SetWorkSchedule(ctx context.Context, actor shared.Actor, providerID uuid.UUID, in []SetWorkScheduleInput) ([]schedule.WorkSchedule, error) {
	if err := s.guard(ctx, actor, providerID); err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, errs.Mark(errs.New("no schedule entries submitted"), errs.ErrValidation)
	}

	seen := make(map[time.Weekday]struct{}, len(in))
	entries := make([]schedule.WorkSchedule, 0, len(in))
	for _, item := range in {
		if _, dup := seen[item.Day]; dup {
			return nil, errs.Mark(errs.Newf("duplicate entry for %s", item.Day), errs.ErrValidation)
		}
		seen[item.Day] = struct{}{}

		ws := schedule.WorkSchedule{
			ProviderID: providerID,
			Day:        item.Day,
			Start:      item.Start,
			End:        item.End,
			Active:     item.Active,
		}
		if err := ws.Validate(); err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		entries = append(entries, ws)
	}

	if err := s.providers.SetWorkSchedule(ctx, providerID, entries); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return entries, nil
}

func (s *scheduleCommandsImpl) PutException(ctx context.Context, actor shared.Actor, providerID uuid.UUID, in PutExceptionInput) (*schedule.ScheduleException, error) {
	if err := s.guard(ctx, actor, providerID); err != nil {
		return nil, err
	}

	exc := schedule.ScheduleException{
		ID:         uuid.New(),
		ProviderID: providerID,
		Date:       schedule.DateOf(in.Date),
		Type:       in.Type,
		Start:      in.Start,
		End:        in.End,
		Reason:     in.Reason,
	}
	if err := exc.Validate(); err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	// One exception per provider per date; a second write replaces the first.
	stored, err := s.providers.PutException(ctx, exc)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return stored, nil
}

func (s *scheduleCommandsImpl) DeleteException(ctx context.Context, actor shared.Actor, providerID, exceptionID uuid.UUID) error {
	if err := s.guard(ctx, actor, providerID); err != nil {
		return err
	}

	if err := s.providers.DeleteException(ctx, providerID, exceptionID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrExceptionNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *scheduleCommandsImpl) UpdateSlotConfig(ctx context.Context, actor shared.Actor, providerID uuid.UUID, cfg schedule.SlotConfig) error {
	if err := s.guard(ctx, actor, providerID); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	if err := s.providers.UpsertSlotConfig(ctx, providerID, cfg); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (s *scheduleCommandsImpl) guard(ctx context.Context, actor shared.Actor, providerID uuid.UUID) error {
	ok, err := s.providers.Exists(ctx, providerID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return errs.ErrProviderNotFound
	}
	if !s.authz.CanMutateSchedule(ctx, actor, providerID) {
		return errs.ErrPermissionDenied
	}
	return nil
}
