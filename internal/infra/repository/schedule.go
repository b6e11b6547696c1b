package repository

import (
	"context"
	"time"

	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/infra"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderRepository persists weekly schedules, date exceptions and slot
// configuration. Times of day are stored as minutes from midnight so that
// rows compare and index naturally.
type ProviderRepository struct {
	pool *pgxpool.Pool
}

func NewProviderRepository(pool *pgxpool.Pool) shared.ProviderRepository {
	return &ProviderRepository{pool: pool}
}

func (r *ProviderRepository) Exists(ctx context.Context, providerID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM providers WHERE id = $1 AND active)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, providerID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check provider existence", err)
	}
	return exists, nil
}

func (r *ProviderRepository) GetWorkSchedule(ctx context.Context, providerID uuid.UUID, day time.Weekday) (*schedule.WorkSchedule, error) {
	const query = `
		SELECT provider_id, day_of_week, start_minutes, end_minutes, active
		FROM work_schedules
		WHERE provider_id = $1 AND day_of_week = $2`

	ws, err := scanWorkSchedule(r.pool.QueryRow(ctx, query, providerID, int(day)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get work schedule", err)
	}
	return ws, nil
}

func (r *ProviderRepository) ListWorkSchedules(ctx context.Context, providerID uuid.UUID) ([]schedule.WorkSchedule, error) {
	const query = `
		SELECT provider_id, day_of_week, start_minutes, end_minutes, active
		FROM work_schedules
		WHERE provider_id = $1
		ORDER BY day_of_week`

	rows, err := r.pool.Query(ctx, query, providerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list work schedules", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan work schedule", err)
		}
		schedules = append(schedules, *ws)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read work schedules", err)
	}
	return schedules, nil
}

func (r *ProviderRepository) SetWorkSchedule(ctx context.Context, providerID uuid.UUID, entries []schedule.WorkSchedule) error {
	const query = `
		INSERT INTO work_schedules (provider_id, day_of_week, start_minutes, end_minutes, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider_id, day_of_week)
		DO UPDATE SET start_minutes = EXCLUDED.start_minutes, end_minutes = EXCLUDED.end_minutes, active = EXCLUDED.active`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, ws := range entries {
		if _, err := tx.Exec(ctx, query,
			providerID, int(ws.Day), ws.Start.Minutes(), ws.End.Minutes(), ws.Active,
		); err != nil {
			return infra.WrapRepoErr("failed to upsert work schedule", err, kindOf(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit work schedules", err)
	}
	return nil
}

func (r *ProviderRepository) GetException(ctx context.Context, providerID uuid.UUID, date time.Time) (*schedule.ScheduleException, error) {
	const query = `
		SELECT id, provider_id, exception_date, exception_type, start_minutes, end_minutes, reason
		FROM schedule_exceptions
		WHERE provider_id = $1 AND exception_date = $2`

	exc, err := scanException(r.pool.QueryRow(ctx, query, providerID, schedule.DateOf(date)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get schedule exception", err)
	}
	return exc, nil
}

func (r *ProviderRepository) ExceptionsInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]schedule.ScheduleException, error) {
	const query = `
		SELECT id, provider_id, exception_date, exception_type, start_minutes, end_minutes, reason
		FROM schedule_exceptions
		WHERE provider_id = $1 AND exception_date >= $2 AND exception_date <= $3
		ORDER BY exception_date`

	rows, err := r.pool.Query(ctx, query, providerID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list schedule exceptions", err)
	}
	defer rows.Close()

	var exceptions []schedule.ScheduleException
	for rows.Next() {
		exc, err := scanException(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule exception", err)
		}
		exceptions = append(exceptions, *exc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule exceptions", err)
	}
	return exceptions, nil
}

// PutException upserts on (provider_id, exception_date): a second exception
// for the same date replaces the first and keeps the original row id.
func (r *ProviderRepository) PutException(ctx context.Context, exc schedule.ScheduleException) (*schedule.ScheduleException, error) {
	const query = `
		INSERT INTO schedule_exceptions (id, provider_id, exception_date, exception_type, start_minutes, end_minutes, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider_id, exception_date)
		DO UPDATE SET exception_type = EXCLUDED.exception_type, start_minutes = EXCLUDED.start_minutes,
		              end_minutes = EXCLUDED.end_minutes, reason = EXCLUDED.reason
		RETURNING id`

	var startMin, endMin *int
	if exc.Start != nil {
		m := exc.Start.Minutes()
		startMin = &m
	}
	if exc.End != nil {
		m := exc.End.Minutes()
		endMin = &m
	}

	stored := exc
	err := r.pool.QueryRow(ctx, query,
		exc.ID, exc.ProviderID, exc.Date, string(exc.Type), startMin, endMin, exc.Reason,
	).Scan(&stored.ID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert schedule exception", err, kindOf(err))
	}
	return &stored, nil
}

func (r *ProviderRepository) DeleteException(ctx context.Context, providerID, exceptionID uuid.UUID) error {
	const query = `DELETE FROM schedule_exceptions WHERE id = $1 AND provider_id = $2`

	tag, err := r.pool.Exec(ctx, query, exceptionID, providerID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete schedule exception", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("schedule exception not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProviderRepository) GetSlotConfig(ctx context.Context, providerID uuid.UUID) (*schedule.SlotConfig, error) {
	const query = `
		SELECT slot_duration_minutes, buffer_time_minutes, booking_lead_days, booking_ahead_days
		FROM slot_configs
		WHERE provider_id = $1`

	var cfg schedule.SlotConfig
	err := r.pool.QueryRow(ctx, query, providerID).Scan(
		&cfg.SlotDurationMinutes, &cfg.BufferTimeMinutes, &cfg.BookingLeadDays, &cfg.BookingAheadDays,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get slot config", err)
	}
	return &cfg, nil
}

func (r *ProviderRepository) UpsertSlotConfig(ctx context.Context, providerID uuid.UUID, cfg schedule.SlotConfig) error {
	const query = `
		INSERT INTO slot_configs (provider_id, slot_duration_minutes, buffer_time_minutes, booking_lead_days, booking_ahead_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider_id)
		DO UPDATE SET slot_duration_minutes = EXCLUDED.slot_duration_minutes, buffer_time_minutes = EXCLUDED.buffer_time_minutes,
		              booking_lead_days = EXCLUDED.booking_lead_days, booking_ahead_days = EXCLUDED.booking_ahead_days`

	_, err := r.pool.Exec(ctx, query,
		providerID, cfg.SlotDurationMinutes, cfg.BufferTimeMinutes, cfg.BookingLeadDays, cfg.BookingAheadDays,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert slot config", err, kindOf(err))
	}
	return nil
}

func scanWorkSchedule(row rowScanner) (*schedule.WorkSchedule, error) {
	var (
		providerID       uuid.UUID
		day              int
		startMin, endMin int
		active           bool
	)
	if err := row.Scan(&providerID, &day, &startMin, &endMin, &active); err != nil {
		return nil, err
	}

	start, err := timeOfDayFromMinutes(startMin)
	if err != nil {
		return nil, err
	}
	end, err := timeOfDayFromMinutes(endMin)
	if err != nil {
		return nil, err
	}

	return &schedule.WorkSchedule{
		ProviderID: providerID,
		Day:        time.Weekday(day),
		Start:      start,
		End:        end,
		Active:     active,
	}, nil
}

func scanException(row rowScanner) (*schedule.ScheduleException, error) {
	var (
		id, providerID   uuid.UUID
		date             time.Time
		excType          string
		startMin, endMin *int
		reason           string
	)
	if err := row.Scan(&id, &providerID, &date, &excType, &startMin, &endMin, &reason); err != nil {
		return nil, err
	}

	exc := &schedule.ScheduleException{
		ID:         id,
		ProviderID: providerID,
		Date:       schedule.DateOf(date),
		Type:       schedule.ExceptionType(excType),
		Reason:     reason,
	}
	if startMin != nil {
		t, err := timeOfDayFromMinutes(*startMin)
		if err != nil {
			return nil, err
		}
		exc.Start = &t
	}
	if endMin != nil {
		t, err := timeOfDayFromMinutes(*endMin)
		if err != nil {
			return nil, err
		}
		exc.End = &t
	}
	return exc, nil
}

func timeOfDayFromMinutes(minutes int) (schedule.TimeOfDay, error) {
	return schedule.NewTimeOfDay(minutes/60, minutes%60)
}
