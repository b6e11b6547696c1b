package authz

import (
	"context"

	"appointment-server/internal/domain/appointment"
	"appointment-server/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleClient   = "client"
)

// RoleBased is the default authorization policy: admins may do anything,
// providers manage their own calendar and appointments, clients act only on
// appointments they booked. Which transitions a client may actually perform
// is decided at the HTTP layer; the engine only checks ownership here.
type RoleBased struct{}

func NewRoleBased() shared.AuthZ {
	return RoleBased{}
}

func (RoleBased) CanMutateSchedule(_ context.Context, actor shared.Actor, providerID uuid.UUID) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleProvider:
		return actor.ID == providerID
	default:
		return false
	}
}

func (RoleBased) CanMutateAppointmentStatus(_ context.Context, actor shared.Actor, appt *appointment.Appointment) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleProvider:
		return actor.ID == appt.ProviderID()
	case RoleClient:
		return actor.ID == appt.ClientID()
	default:
		return false
	}
}
