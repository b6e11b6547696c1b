package components

import (
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/pkg/clock"
	"appointment-server/internal/pkg/config"
	"appointment-server/internal/pkg/lock"
	"appointment-server/internal/usecase/commands"
	"appointment-server/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	lock.NewKeyed,
	NewDefaultSlotConfig,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewScheduleCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewAppointmentQueries,
		queries.NewScheduleQueries,
	),
)

// NewDefaultSlotConfig turns the environment booking settings into the slot
// configuration used for providers without one of their own.
func NewDefaultSlotConfig(cfg config.Config) schedule.SlotConfig {
	return schedule.SlotConfig{
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		BufferTimeMinutes:   cfg.Booking.BufferTimeMinutes,
		BookingLeadDays:     cfg.Booking.BookingLeadDays,
		BookingAheadDays:    cfg.Booking.BookingAheadDays,
	}
}
