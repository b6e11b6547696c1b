//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/clock"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/pkg/lock"
	"appointment-server/internal/usecase/commands"
	"appointment-server/internal/usecase/shared"
	"appointment-server/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	providers    *fake.ProviderRepository
	services     *fake.ServiceRepository
	appointments *fake.AppointmentRepository
	clock        *clock.MockClock
	booking      commands.BookingCommands

	providerID uuid.UUID
	clientID   uuid.UUID
	serviceID  uuid.UUID // 30 minutes, 5000 cents
	longSvcID  uuid.UUID // 60 minutes, 9000 cents
	actor      shared.Actor
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.providers = fake.NewProviderRepository()
	s.services = fake.NewServiceRepository()
	s.appointments = fake.NewAppointmentRepository()
	// Sunday 2026-03-01 09:00 UTC; the booked Monday is the next day.
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	defaultCfg := schedule.SlotConfig{
		SlotDurationMinutes: 30,
		BufferTimeMinutes:   0,
		BookingLeadDays:     0,
		BookingAheadDays:    30,
	}
	s.booking = commands.NewBookingCommands(
		s.providers, s.services, s.appointments,
		fake.AuthZ{Allow: true}, lock.NewKeyed(), s.clock, defaultCfg,
	)

	s.providerID = uuid.New()
	s.clientID = uuid.New()
	s.actor = shared.Actor{ID: s.clientID, Role: "client"}
	s.providers.AddProvider(s.providerID)

	start, _ := schedule.NewTimeOfDay(10, 0)
	end, _ := schedule.NewTimeOfDay(14, 0)
	for day := time.Monday; day <= time.Friday; day++ {
		s.Require().NoError(s.providers.SetWorkSchedule(context.Background(), s.providerID, []schedule.WorkSchedule{
			{ProviderID: s.providerID, Day: day, Start: start, End: end, Active: true},
		}))
	}

	s.serviceID = uuid.New()
	s.services.Add(shared.ServiceRecord{
		ID: s.serviceID, ProviderID: s.providerID,
		Name: "Consultation", DurationMinutes: 30, PriceCents: 5000, Active: true,
	})
	s.longSvcID = uuid.New()
	s.services.Add(shared.ServiceRecord{
		ID: s.longSvcID, ProviderID: s.providerID,
		Name: "Extended session", DurationMinutes: 60, PriceCents: 9000, Active: true,
	})
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) monday(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func (s *BookingCommandsTestSuite) createInput(start time.Time, serviceIDs ...uuid.UUID) commands.CreateAppointmentInput {
	if len(serviceIDs) == 0 {
		serviceIDs = []uuid.UUID{s.serviceID}
	}
	return commands.CreateAppointmentInput{
		ClientID:   s.clientID,
		ProviderID: s.providerID,
		StartTime:  start,
		ServiceIDs: serviceIDs,
	}
}

func (s *BookingCommandsTestSuite) TestCreate() {
	ctx := context.Background()

	s.Run("books a slot-aligned appointment as pending", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))

		s.Require().NoError(err)
		s.Equal(appointment.StatusPending, appt.Status())
		s.Equal(s.monday(10, 30), appt.EndTime())
		s.Equal(int64(5000), appt.TotalPriceCents())
	})

	s.Run("multi-service appointment spans the combined duration", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(11, 0), s.serviceID, s.longSvcID))

		s.Require().NoError(err)
		s.Equal(s.monday(12, 30), appt.EndTime())
		s.Equal(int64(14000), appt.TotalPriceCents())
	})

	s.Run("unknown provider", func() {
		in := s.createInput(s.monday(10, 0))
		in.ProviderID = uuid.New()

		_, err := s.booking.Create(ctx, in)
		s.ErrorIs(err, errs.ErrProviderNotFound)
	})

	s.Run("unknown service", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0), uuid.New()))
		s.ErrorIs(err, errs.ErrServiceNotFound)
	})

	s.Run("duplicate service selection", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0), s.serviceID, s.serviceID))
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("empty service selection", func() {
		in := s.createInput(s.monday(10, 0))
		in.ServiceIDs = nil

		_, err := s.booking.Create(ctx, in)
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("inactive service", func() {
		inactive := uuid.New()
		s.services.Add(shared.ServiceRecord{
			ID: inactive, ProviderID: s.providerID,
			Name: "Retired", DurationMinutes: 30, PriceCents: 1000, Active: false,
		})

		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0), inactive))
		s.ErrorIs(err, errs.ErrValidation)
	})

	s.Run("service of another provider", func() {
		foreign := uuid.New()
		s.services.Add(shared.ServiceRecord{
			ID: foreign, ProviderID: uuid.New(),
			Name: "Elsewhere", DurationMinutes: 30, PriceCents: 1000, Active: true,
		})

		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0), foreign))
		s.ErrorIs(err, errs.ErrValidation)
	})
}

func (s *BookingCommandsTestSuite) TestCreatePlacement() {
	ctx := context.Background()

	s.Run("start off the slot grid", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 15)))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("start before working hours", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(9, 0)))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("end past working hours", func() {
		// 13:30 + 60min service runs past the 14:00 close
		_, err := s.booking.Create(ctx, s.createInput(s.monday(13, 30), s.longSvcID))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("closed weekday", func() {
		sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
		_, err := s.booking.Create(ctx, s.createInput(sunday))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("day off exception closes the day", func() {
		dayOff := schedule.ScheduleException{
			ID:         uuid.New(),
			ProviderID: s.providerID,
			Date:       time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			Type:       schedule.ExceptionDayOff,
		}
		_, err := s.providers.PutException(ctx, dayOff)
		s.Require().NoError(err)

		tuesday := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
		_, err = s.booking.Create(ctx, s.createInput(tuesday))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("past the booking horizon", func() {
		farOut := time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)
		_, err := s.booking.Create(ctx, s.createInput(farOut))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})

	s.Run("before the lead time", func() {
		s.providers.Configs[s.providerID] = schedule.SlotConfig{
			SlotDurationMinutes: 30,
			BookingLeadDays:     2,
			BookingAheadDays:    30,
		}
		defer delete(s.providers.Configs, s.providerID)

		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
		s.ErrorIs(err, errs.ErrSchedulingWindow)
	})
}

func (s *BookingCommandsTestSuite) TestCreateConflicts() {
	ctx := context.Background()

	s.Run("overlapping appointment blocks the slot", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
		s.Require().NoError(err)

		_, err = s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
		s.ErrorIs(err, errs.ErrBookingConflict)
	})

	s.Run("cancelled appointment frees the slot", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(11, 0)))
		s.Require().NoError(err)

		_, err = s.booking.Cancel(ctx, s.actor, appt.ID())
		s.Require().NoError(err)

		_, err = s.booking.Create(ctx, s.createInput(s.monday(11, 0)))
		s.NoError(err)
	})

	s.Run("buffer blocks the adjacent slot", func() {
		s.providers.Configs[s.providerID] = schedule.SlotConfig{
			SlotDurationMinutes: 30,
			BufferTimeMinutes:   15,
			BookingAheadDays:    30,
		}
		defer delete(s.providers.Configs, s.providerID)

		_, err := s.booking.Create(ctx, s.createInput(s.monday(12, 0)))
		s.Require().NoError(err)

		// 12:30 starts inside the 15-minute buffer after the 12:00-12:30 booking
		_, err = s.booking.Create(ctx, s.createInput(s.monday(12, 30)))
		s.ErrorIs(err, errs.ErrBookingConflict)

		// 13:00 clears the buffer
		_, err = s.booking.Create(ctx, s.createInput(s.monday(13, 0)))
		s.NoError(err)
	})
}

func (s *BookingCommandsTestSuite) TestCreateRace() {
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrBookingConflict):
			conflicted++
		default:
			s.Failf("unexpected error", "got %v", err)
		}
	}
	s.Equal(1, succeeded, "exactly one request should win the slot")
	s.Equal(1, conflicted, "the loser should see a booking conflict")
	s.Len(s.appointments.Appointments, 1)
}

func (s *BookingCommandsTestSuite) TestUpdate() {
	ctx := context.Background()

	s.Run("reschedule to a free slot", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
		s.Require().NoError(err)

		newStart := s.monday(12, 0)
		updated, err := s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{
			StartTime: &newStart,
		})

		s.Require().NoError(err)
		s.Equal(newStart, updated.StartTime())
		s.Equal(s.monday(12, 30), updated.EndTime())
	})

	s.Run("reschedule does not collide with itself", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(13, 0)))
		s.Require().NoError(err)

		// Moving half a slot within its own window must not report a conflict
		// with the appointment being moved.
		newStart := s.monday(13, 30)
		_, err = s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{
			StartTime: &newStart,
		})
		s.NoError(err)
	})

	s.Run("reschedule onto another booking conflicts", func() {
		_, err := s.booking.Create(ctx, s.createInput(s.monday(10, 30)))
		s.Require().NoError(err)

		second, err := s.booking.Create(ctx, s.createInput(s.monday(11, 0)))
		s.Require().NoError(err)

		newStart := s.monday(10, 30)
		_, err = s.booking.Update(ctx, s.actor, second.ID(), commands.UpdateAppointmentInput{
			StartTime: &newStart,
		})
		s.ErrorIs(err, errs.ErrBookingConflict)
	})

	s.Run("notes-only update skips the availability check", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(11, 30)))
		s.Require().NoError(err)

		before := s.appointments.OverlapCalls
		notes := "bring previous records"
		updated, err := s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{
			Notes: &notes,
		})

		s.Require().NoError(err)
		s.Equal(notes, updated.Notes().String())
		s.Equal(before, s.appointments.OverlapCalls)
	})

	s.Run("unknown appointment", func() {
		_, err := s.booking.Update(ctx, s.actor, uuid.New(), commands.UpdateAppointmentInput{})
		s.ErrorIs(err, errs.ErrAppointmentNotFound)
	})
}

func (s *BookingCommandsTestSuite) TestStatusTransitions() {
	ctx := context.Background()

	confirm := func(id uuid.UUID) {
		confirmed := appointment.StatusConfirmed
		_, err := s.booking.Update(ctx, s.actor, id, commands.UpdateAppointmentInput{Status: &confirmed})
		s.Require().NoError(err)
	}

	s.Run("pending to confirmed to completed", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(10, 0)))
		s.Require().NoError(err)

		confirm(appt.ID())

		completed := appointment.StatusCompleted
		updated, err := s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{Status: &completed})
		s.Require().NoError(err)
		s.Equal(appointment.StatusCompleted, updated.Status())
	})

	s.Run("pending cannot complete directly", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(10, 30)))
		s.Require().NoError(err)

		completed := appointment.StatusCompleted
		_, err = s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{Status: &completed})
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("cancel twice fails", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(11, 0)))
		s.Require().NoError(err)

		_, err = s.booking.Cancel(ctx, s.actor, appt.ID())
		s.Require().NoError(err)

		_, err = s.booking.Cancel(ctx, s.actor, appt.ID())
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("terminal appointment cannot be rescheduled", func() {
		appt, err := s.booking.Create(ctx, s.createInput(s.monday(11, 30)))
		s.Require().NoError(err)

		_, err = s.booking.Cancel(ctx, s.actor, appt.ID())
		s.Require().NoError(err)

		newStart := s.monday(12, 0)
		_, err = s.booking.Update(ctx, s.actor, appt.ID(), commands.UpdateAppointmentInput{
			StartTime: &newStart,
		})
		s.ErrorIs(err, errs.ErrInvalidTransition)
	})

	s.Run("status change denied without permission", func() {
		denied := commands.NewBookingCommands(
			s.providers, s.services, s.appointments,
			fake.AuthZ{Allow: false}, lock.NewKeyed(), s.clock,
			schedule.SlotConfig{SlotDurationMinutes: 30, BookingAheadDays: 30},
		)

		appt, err := s.booking.Create(ctx, s.createInput(s.monday(12, 0)))
		s.Require().NoError(err)

		_, err = denied.Cancel(ctx, s.actor, appt.ID())
		s.ErrorIs(err, errs.ErrPermissionDenied)
	})
}
