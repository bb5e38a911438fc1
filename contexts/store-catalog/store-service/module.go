package store

import (
	"log/slog"

	httpadapter "storerating/contexts/store-catalog/store-service/adapters/http"
	"storerating/contexts/store-catalog/store-service/adapters/memory"
	"storerating/contexts/store-catalog/store-service/application"
	"storerating/contexts/store-catalog/store-service/ports"
	"storerating/internal/platform/memdb"
)

// Module is the store-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Owners      ports.OwnerDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Owners:      deps.Owners,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module over db. When owners
// is nil, owner lookups read the users table of the same db.
func NewInMemoryModule(db *memdb.DB, owners ports.OwnerDirectory, logger *slog.Logger) Module {
	store := memory.NewStore(db)
	if owners == nil {
		owners = store
	}
	module := NewModule(Dependencies{
		Repository:  store,
		Owners:      owners,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
