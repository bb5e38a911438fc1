package ratings

import (
	"log/slog"
	"time"

	httpadapter "storerating/contexts/store-catalog/rating-ledger/adapters/http"
	"storerating/contexts/store-catalog/rating-ledger/adapters/memory"
	"storerating/contexts/store-catalog/rating-ledger/application/commands"
	"storerating/contexts/store-catalog/rating-ledger/application/queries"
	"storerating/contexts/store-catalog/rating-ledger/application/workers"
	"storerating/contexts/store-catalog/rating-ledger/ports"
	"storerating/internal/platform/memdb"
)

// Module is the rating-ledger composition root exposed to runtime wiring.
type Module struct {
	Handler    httpadapter.Handler
	Reconciler workers.AggregateReconciler
	Store      *memory.Store
}

type Dependencies struct {
	Repository        ports.Repository
	Reconciler        ports.Reconciler
	Gate              ports.AccessGate
	Clock             ports.Clock
	IDGenerator       ports.IDGenerator
	ReconcileInterval time.Duration
	Logger            *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitRatingUseCase{
				Ratings:     deps.Repository,
				Clock:       deps.Clock,
				IDGenerator: deps.IDGenerator,
				Logger:      deps.Logger,
			},
			Update: commands.UpdateRatingUseCase{
				Ratings: deps.Repository,
				Gate:    deps.Gate,
				Clock:   deps.Clock,
				Logger:  deps.Logger,
			},
			Delete: commands.DeleteRatingUseCase{
				Ratings: deps.Repository,
				Gate:    deps.Gate,
				Logger:  deps.Logger,
			},
			GetMine:     queries.GetMyRatingUseCase{Ratings: deps.Repository},
			ByUser:      queries.ListUserRatingsUseCase{Ratings: deps.Repository},
			ByStore:     queries.ListStoreRatingsUseCase{Ratings: deps.Repository},
			UserRatings: queries.UserRatingMapUseCase{Ratings: deps.Repository},
			Stats:       queries.StatsUseCase{Ratings: deps.Repository},
			Logger:      deps.Logger,
		},
		Reconciler: workers.AggregateReconciler{
			Reconciler: deps.Reconciler,
			Interval:   deps.ReconcileInterval,
			Logger:     deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module over db.
func NewInMemoryModule(db *memdb.DB, gate ports.AccessGate, logger *slog.Logger) Module {
	store := memory.NewStore(db)
	module := NewModule(Dependencies{
		Repository:  store,
		Reconciler:  store,
		Gate:        gate,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
