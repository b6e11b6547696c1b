//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/commands"
	"appointment-server/internal/usecase/shared"
	"appointment-server/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ScheduleCommandsTestSuite struct {
	suite.Suite
	providers *fake.ProviderRepository
	schedules commands.ScheduleCommands

	providerID uuid.UUID
	actor      shared.Actor
}

func (s *ScheduleCommandsTestSuite) SetupTest() {
	s.providers = fake.NewProviderRepository()
	s.schedules = commands.NewScheduleCommands(s.providers, fake.AuthZ{Allow: true})

	s.providerID = uuid.New()
	s.actor = shared.Actor{ID: s.providerID, Role: "provider"}
	s.providers.AddProvider(s.providerID)
}

func TestScheduleCommandsSuite(t *testing.T) {
	suite.Run(t, new(ScheduleCommandsTestSuite))
}

func (s *ScheduleCommandsTestSuite) tod(hour, minute int) schedule.TimeOfDay {
	t, err := schedule.NewTimeOfDay(hour, minute)
	s.Require().NoError(err)
	return t
}

func (s *ScheduleCommandsTestSuite) TestSetWorkSchedule() {
	ctx := context.Background()

	s.Run("stores the submitted weekdays", func() {
		entries, err := s.schedules.SetWorkSchedule(ctx, s.actor, s.providerID, []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(9, 0), End: s.tod(17, 0), Active: true},
			{Day: time.Tuesday, Start: s.tod(10, 0), End: s.tod(14, 0), Active: true},
		})

		s.Require().NoError(err)
		s.Len(entries, 2)

		stored, err := s.providers.GetWorkSchedule(ctx, s.providerID, time.Tuesday)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal("10:00", stored.Start.String())
	})

	s.Run("resubmitting a weekday replaces it", func() {
		_, err := s.schedules.SetWorkSchedule(ctx, s.actor, s.providerID, []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(8, 0), End: s.tod(12, 0), Active: true},
		})
		s.Require().NoError(err)

		stored, err := s.providers.GetWorkSchedule(ctx, s.providerID, time.Monday)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal("08:00", stored.Start.String())
	})

	s.Run("rejects an empty submission", func() {
		_, err := s.schedules.SetWorkSchedule(ctx, s.actor, s.providerID, nil)
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("rejects a duplicated weekday", func() {
		_, err := s.schedules.SetWorkSchedule(ctx, s.actor, s.providerID, []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(9, 0), End: s.tod(12, 0), Active: true},
			{Day: time.Monday, Start: s.tod(13, 0), End: s.tod(17, 0), Active: true},
		})
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("rejects end before start", func() {
		_, err := s.schedules.SetWorkSchedule(ctx, s.actor, s.providerID, []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(17, 0), End: s.tod(9, 0), Active: true},
		})
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("unknown provider", func() {
		_, err := s.schedules.SetWorkSchedule(ctx, s.actor, uuid.New(), []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(9, 0), End: s.tod(17, 0), Active: true},
		})
		s.ErrorIs(err, errs.ErrProviderNotFound)
	})

	s.Run("denied without permission", func() {
		denied := commands.NewScheduleCommands(s.providers, fake.AuthZ{Allow: false})
		_, err := denied.SetWorkSchedule(ctx, s.actor, s.providerID, []commands.SetWorkScheduleInput{
			{Day: time.Monday, Start: s.tod(9, 0), End: s.tod(17, 0), Active: true},
		})
		s.ErrorIs(err, errs.ErrPermissionDenied)
	})
}

func (s *ScheduleCommandsTestSuite) TestPutException() {
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	s.Run("stores a day off", func() {
		exc, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date:   date,
			Type:   schedule.ExceptionDayOff,
			Reason: "public holiday",
		})

		s.Require().NoError(err)
		s.Equal(schedule.ExceptionDayOff, exc.Type)
		s.NotEqual(uuid.Nil, exc.ID)
	})

	s.Run("special hours require both times", func() {
		_, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date: date,
			Type: schedule.ExceptionSpecialHours,
		})
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("special hours with a valid window", func() {
		start := s.tod(12, 0)
		end := s.tod(16, 0)
		exc, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date:  date,
			Type:  schedule.ExceptionSpecialHours,
			Start: &start,
			End:   &end,
		})

		s.Require().NoError(err)
		s.Equal("12:00", exc.Start.String())
	})

	s.Run("second exception for the same date replaces the first", func() {
		first, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date: date,
			Type: schedule.ExceptionDayOff,
		})
		s.Require().NoError(err)

		second, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date: date,
			Type: schedule.ExceptionDayOff,
		})
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
	})

	s.Run("unknown exception type", func() {
		_, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date: date,
			Type: schedule.ExceptionType("SABBATICAL"),
		})
		s.ErrorIs(err, errs.ErrValidation)
	})
}

func (s *ScheduleCommandsTestSuite) TestDeleteException() {
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	s.Run("deletes a stored exception", func() {
		exc, err := s.schedules.PutException(ctx, s.actor, s.providerID, commands.PutExceptionInput{
			Date: date,
			Type: schedule.ExceptionDayOff,
		})
		s.Require().NoError(err)

		s.NoError(s.schedules.DeleteException(ctx, s.actor, s.providerID, exc.ID))
	})

	s.Run("missing exception", func() {
		err := s.schedules.DeleteException(ctx, s.actor, s.providerID, uuid.New())
		s.ErrorIs(err, errs.ErrExceptionNotFound)
	})
}

func (s *ScheduleCommandsTestSuite) TestUpdateSlotConfig() {
	ctx := context.Background()

	s.Run("stores a valid config", func() {
		err := s.schedules.UpdateSlotConfig(ctx, s.actor, s.providerID, schedule.SlotConfig{
			SlotDurationMinutes: 20,
			BufferTimeMinutes:   10,
			BookingLeadDays:     1,
			BookingAheadDays:    14,
		})
		s.Require().NoError(err)

		stored, err := s.providers.GetSlotConfig(ctx, s.providerID)
		s.Require().NoError(err)
		s.Require().NotNil(stored)
		s.Equal(20, stored.SlotDurationMinutes)
	})

	s.Run("rejects lead beyond horizon", func() {
		err := s.schedules.UpdateSlotConfig(ctx, s.actor, s.providerID, schedule.SlotConfig{
			SlotDurationMinutes: 30,
			BookingLeadDays:     30,
			BookingAheadDays:    7,
		})
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("rejects a non-positive slot duration", func() {
		err := s.schedules.UpdateSlotConfig(ctx, s.actor, s.providerID, schedule.SlotConfig{
			SlotDurationMinutes: 0,
			BookingAheadDays:    7,
		})
		s.ErrorIs(err, errs.ErrValidation)
	})
}
