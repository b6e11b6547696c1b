package queries

import (
	"context"
	"time"

	"appointment-server/internal/infra"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentView, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]AppointmentView, error)
	ListByDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]AppointmentView, error)
}

type appointmentQueriesImpl struct {
	appointments shared.AppointmentRepository
}

func NewAppointmentQueries(appointments shared.AppointmentRepository) AppointmentQueries {
	return &appointmentQueriesImpl{appointments: appointments}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	appt, err := q.appointments.GetByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view := NewAppointmentView(appt)
	return &view, nil
}

func (q *appointmentQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentView, error) {
	appts, err := q.appointments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewAppointmentViews(appts), nil
}

func (q *appointmentQueriesImpl) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]AppointmentView, error) {
	appts, err := q.appointments.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewAppointmentViews(appts), nil
}

func (q *appointmentQueriesImpl) ListByDateRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]AppointmentView, error) {
	if to.Before(from) {
		return nil, errs.Mark(errs.New("date range end precedes start"), errs.ErrValidation)
	}
	appts, err := q.appointments.ListByDateRange(ctx, providerID, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return NewAppointmentViews(appts), nil
}
