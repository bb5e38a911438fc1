package authorization

import (
	"log/slog"

	"storerating/contexts/identity-access/authorization-service/application/queries"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Gate queries.CheckAccessUseCase
}

// Dependencies captures everything NewModule needs. The gate is stateless.
type Dependencies struct {
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Gate: queries.CheckAccessUseCase{Logger: deps.Logger},
	}
}
