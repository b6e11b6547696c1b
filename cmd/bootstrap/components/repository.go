package components

import (
	"appointment-server/internal/infra/authz"
	"appointment-server/internal/infra/repository"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		repository.NewProviderRepository,
		repository.NewServiceRepository,
		repository.NewAppointmentRepository,
		authz.NewRoleBased,
	),
)
