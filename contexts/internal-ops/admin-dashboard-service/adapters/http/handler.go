package httpadapter

import (
	"context"

	"storerating/contexts/internal-ops/admin-dashboard-service/application"
	httptransport "storerating/contexts/internal-ops/admin-dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	dashboard, err := h.Service.Dashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	return httptransport.DashboardResponse{
		TotalUsers:        dashboard.TotalUsers(),
		Admins:            dashboard.Admins,
		Users:             dashboard.Users,
		StoreOwners:       dashboard.StoreOwners,
		TotalStores:       dashboard.TotalStores,
		StoresWithRatings: dashboard.StoresWithRatings,
		TotalRatings:      dashboard.TotalRatings,
		AverageRating:     dashboard.AverageRating,
		UniqueRaters:      dashboard.UniqueRaters,
		GeneratedAt:       dashboard.GeneratedAt,
	}, nil
}
