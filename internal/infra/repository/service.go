package repository

import (
	"context"

	"appointment-server/internal/infra"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) shared.ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.ServiceRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, provider_id, name, duration_minutes, price_cents, active
		FROM services
		WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get services", err)
	}
	defer rows.Close()

	var records []shared.ServiceRecord
	for rows.Next() {
		var rec shared.ServiceRecord
		if err := rows.Scan(&rec.ID, &rec.ProviderID, &rec.Name, &rec.DurationMinutes, &rec.PriceCents, &rec.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read services", err)
	}
	return records, nil
}
