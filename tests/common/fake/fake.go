// Package fake provides in-memory implementations of the persistence ports
// for usecase-level tests.
package fake

import (
	"context"
	"sync"
	"time"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/domain/availability"
	"appointment-server/internal/domain/schedule"
	"appointment-server/internal/infra"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProviderRepository struct {
	mu         sync.Mutex
	Providers  map[uuid.UUID]bool
	Schedules  map[uuid.UUID]map[time.Weekday]schedule.WorkSchedule
	Exceptions map[uuid.UUID]map[string]schedule.ScheduleException // keyed by date
	Configs    map[uuid.UUID]schedule.SlotConfig
}

func NewProviderRepository() *ProviderRepository {
	return &ProviderRepository{
		Providers:  make(map[uuid.UUID]bool),
		Schedules:  make(map[uuid.UUID]map[time.Weekday]schedule.WorkSchedule),
		Exceptions: make(map[uuid.UUID]map[string]schedule.ScheduleException),
		Configs:    make(map[uuid.UUID]schedule.SlotConfig),
	}
}

func (f *ProviderRepository) AddProvider(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Providers[id] = true
}

func (f *ProviderRepository) Exists(_ context.Context, providerID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Providers[providerID], nil
}

func (f *ProviderRepository) GetWorkSchedule(_ context.Context, providerID uuid.UUID, day time.Weekday) (*schedule.WorkSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	week, ok := f.Schedules[providerID]
	if !ok {
		return nil, nil
	}
	ws, ok := week[day]
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (f *ProviderRepository) ListWorkSchedules(_ context.Context, providerID uuid.UUID) ([]schedule.WorkSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []schedule.WorkSchedule
	for day := time.Sunday; day <= time.Saturday; day++ {
		if ws, ok := f.Schedules[providerID][day]; ok {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (f *ProviderRepository) SetWorkSchedule(_ context.Context, providerID uuid.UUID, entries []schedule.WorkSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	week, ok := f.Schedules[providerID]
	if !ok {
		week = make(map[time.Weekday]schedule.WorkSchedule)
		f.Schedules[providerID] = week
	}
	for _, ws := range entries {
		week[ws.Day] = ws
	}
	return nil
}

func (f *ProviderRepository) GetException(_ context.Context, providerID uuid.UUID, date time.Time) (*schedule.ScheduleException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	exc, ok := f.Exceptions[providerID][dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &exc, nil
}

func (f *ProviderRepository) ExceptionsInRange(_ context.Context, providerID uuid.UUID, from, to time.Time) ([]schedule.ScheduleException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []schedule.ScheduleException
	for _, exc := range f.Exceptions[providerID] {
		if !exc.Date.Before(from) && !exc.Date.After(to) {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (f *ProviderRepository) PutException(_ context.Context, exc schedule.ScheduleException) (*schedule.ScheduleException, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDate, ok := f.Exceptions[exc.ProviderID]
	if !ok {
		byDate = make(map[string]schedule.ScheduleException)
		f.Exceptions[exc.ProviderID] = byDate
	}
	if prev, ok := byDate[dateKey(exc.Date)]; ok {
		exc.ID = prev.ID
	}
	byDate[dateKey(exc.Date)] = exc
	return &exc, nil
}

func (f *ProviderRepository) DeleteException(_ context.Context, providerID, exceptionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, exc := range f.Exceptions[providerID] {
		if exc.ID == exceptionID {
			delete(f.Exceptions[providerID], key)
			return nil
		}
	}
	return infra.WrapRepoErr("schedule exception not found", nil, infra.KindNotFound)
}

func (f *ProviderRepository) GetSlotConfig(_ context.Context, providerID uuid.UUID) (*schedule.SlotConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg, ok := f.Configs[providerID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

func (f *ProviderRepository) UpsertSlotConfig(_ context.Context, providerID uuid.UUID, cfg schedule.SlotConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Configs[providerID] = cfg
	return nil
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

type ServiceRepository struct {
	mu       sync.Mutex
	Services map[uuid.UUID]shared.ServiceRecord
}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{Services: make(map[uuid.UUID]shared.ServiceRecord)}
}

func (f *ServiceRepository) Add(rec shared.ServiceRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Services[rec.ID] = rec
}

func (f *ServiceRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]shared.ServiceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []shared.ServiceRecord
	for _, id := range ids {
		if rec, ok := f.Services[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

type AppointmentRepository struct {
	mu           sync.Mutex
	Appointments map[uuid.UUID]*appointment.Appointment

	// OverlapCalls counts FindOverlapping invocations so tests can assert
	// whether a command re-checked availability.
	OverlapCalls int
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{Appointments: make(map[uuid.UUID]*appointment.Appointment)}
}

func (f *AppointmentRepository) Create(_ context.Context, appt *appointment.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Appointments[appt.ID()]; exists {
		return infra.WrapRepoErr("duplicate appointment id", nil, infra.KindDuplicateKey)
	}
	f.Appointments[appt.ID()] = appt
	return nil
}

func (f *AppointmentRepository) Update(_ context.Context, appt *appointment.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Appointments[appt.ID()]; !exists {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	f.Appointments[appt.ID()] = appt
	return nil
}

func (f *AppointmentRepository) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.Appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return appt, nil
}

func (f *AppointmentRepository) FindOverlapping(_ context.Context, providerID uuid.UUID, from, to time.Time) ([]availability.BusyInterval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OverlapCalls++

	var busy []availability.BusyInterval
	for _, appt := range f.Appointments {
		if appt.ProviderID() != providerID || appt.Status() == appointment.StatusCancelled {
			continue
		}
		if appt.StartTime().Before(to) && from.Before(appt.EndTime()) {
			busy = append(busy, availability.BusyInterval{
				AppointmentID: appt.ID(),
				Start:         appt.StartTime(),
				End:           appt.EndTime(),
			})
		}
	}
	return busy, nil
}

func (f *AppointmentRepository) ListByClient(_ context.Context, clientID uuid.UUID) ([]*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*appointment.Appointment
	for _, appt := range f.Appointments {
		if appt.ClientID() == clientID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *AppointmentRepository) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*appointment.Appointment
	for _, appt := range f.Appointments {
		if appt.ProviderID() == providerID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *AppointmentRepository) ListByDateRange(_ context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*appointment.Appointment
	for _, appt := range f.Appointments {
		if appt.ProviderID() != providerID {
			continue
		}
		if !appt.StartTime().Before(from) && appt.StartTime().Before(to) {
			out = append(out, appt)
		}
	}
	return out, nil
}

// AuthZ grants or denies everything, for tests that only need one policy.
type AuthZ struct {
	Allow bool
}

func (a AuthZ) CanMutateSchedule(context.Context, shared.Actor, uuid.UUID) bool {
	return a.Allow
}

func (a AuthZ) CanMutateAppointmentStatus(context.Context, shared.Actor, *appointment.Appointment) bool {
	return a.Allow
}
