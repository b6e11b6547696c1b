package repository

import (
	"context"
	"encoding/json"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/availability"
	"appointment-server/internal/infra"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// serviceLine is the JSONB shape of one booked service snapshot.
type serviceLine struct {
	ServiceID       uuid.UUID `json:"service_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
}

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) shared.AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	services, err := marshalServices(appt.Services())
	if err != nil {
		return infra.WrapRepoErr("failed to encode service snapshots", err)
	}

	const query = `
		INSERT INTO appointments (id, client_id, provider_id, start_time, end_time, status, services, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`

	_, err = r.pool.Exec(ctx, query,
		appt.ID(), appt.ClientID(), appt.ProviderID(),
		appt.StartTime(), appt.EndTime(),
		string(appt.Status()), services, appt.Notes().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err, kindOf(err))
	}
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	services, err := marshalServices(appt.Services())
	if err != nil {
		return infra.WrapRepoErr("failed to encode service snapshots", err)
	}

	const query = `
		UPDATE appointments
		SET start_time = $2, end_time = $3, status = $4, services = $5, notes = $6, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		appt.ID(),
		appt.StartTime(), appt.EndTime(),
		string(appt.Status()), services, appt.Notes().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err, kindOf(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	const query = `
		SELECT id, client_id, provider_id, start_time, status, services, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1`

	appt, err := scanAppointment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get appointment", err)
	}
	return appt, nil
}

// FindOverlapping uses the half-open overlap predicate on the stored
// [start_time, end_time) windows; cancelled appointments never block.
func (r *AppointmentRepository) FindOverlapping(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.BusyInterval, error) {
	const query = `
		SELECT id, start_time, end_time
		FROM appointments
		WHERE provider_id = $1
		  AND status <> 'CANCELLED'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, providerID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping appointments", err)
	}
	defer rows.Close()

	var busy []availability.BusyInterval
	for rows.Next() {
		var b availability.BusyInterval
		if err := rows.Scan(&b.AppointmentID, &b.Start, &b.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy interval", err)
		}
		busy = append(busy, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read busy intervals", err)
	}
	return busy, nil
}

func (r *AppointmentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*appointment.Appointment, error) {
	const query = `
		SELECT id, client_id, provider_id, start_time, status, services, notes, created_at, updated_at
		FROM appointments
		WHERE client_id = $1
		ORDER BY start_time DESC`

	return r.list(ctx, query, clientID)
}

func (r *AppointmentRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*appointment.Appointment, error) {
	const query = `
		SELECT id, client_id, provider_id, start_time, status, services, notes, created_at, updated_at
		FROM appointments
		WHERE provider_id = $1
		ORDER BY start_time DESC`

	return r.list(ctx, query, providerID)
}

func (r *AppointmentRepository) ListByDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	const query = `
		SELECT id, client_id, provider_id, start_time, status, services, notes, created_at, updated_at
		FROM appointments
		WHERE provider_id = $1
		  AND start_time >= $2
		  AND start_time < $3
		ORDER BY start_time`

	return r.list(ctx, query, providerID, from, to)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]*appointment.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	var appts []*appointment.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointments", err)
	}
	return appts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	var (
		id, clientID, providerID uuid.UUID
		startTime                time.Time
		status                   string
		rawServices              []byte
		notes                    string
		createdAt, updatedAt     time.Time
	)
	if err := row.Scan(&id, &clientID, &providerID, &startTime, &status, &rawServices, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	services, err := unmarshalServices(rawServices)
	if err != nil {
		return nil, err
	}

	return appointment.ReconstructAppointment(
		id, clientID, providerID,
		startTime, services,
		appointment.Status(status),
		appointment.NewNotes(notes),
		createdAt, updatedAt,
	), nil
}

func marshalServices(snaps []appointment.ServiceSnapshot) ([]byte, error) {
	lines := make([]serviceLine, 0, len(snaps))
	for _, s := range snaps {
		lines = append(lines, serviceLine{
			ServiceID:       s.ID(),
			Name:            s.Name(),
			DurationMinutes: s.DurationMinutes(),
			PriceCents:      s.PriceCents(),
		})
	}
	return json.Marshal(lines)
}

func unmarshalServices(raw []byte) ([]appointment.ServiceSnapshot, error) {
	var lines []serviceLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	snaps := make([]appointment.ServiceSnapshot, 0, len(lines))
	for _, line := range lines {
		snap, err := appointment.NewServiceSnapshot(line.ServiceID, line.Name, line.DurationMinutes, line.PriceCents)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}
