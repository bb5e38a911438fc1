package admindashboardservice

import (
	"log/slog"

	httpadapter "storerating/contexts/internal-ops/admin-dashboard-service/adapters/http"
	"storerating/contexts/internal-ops/admin-dashboard-service/application"
	"storerating/contexts/internal-ops/admin-dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
}

type Dependencies struct {
	Users   ports.UserCounter
	Stores  ports.StoreCounter
	Ratings ports.RatingCounter
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Users:   deps.Users,
				Stores:  deps.Stores,
				Ratings: deps.Ratings,
				Logger:  deps.Logger,
			},
		},
	}
}
