package httpadapter

import (
	"context"
	"log/slog"

	"storerating/contexts/store-catalog/store-service/application"
	"storerating/contexts/store-catalog/store-service/domain/entities"
	httptransport "storerating/contexts/store-catalog/store-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateStoreHandler(ctx context.Context, req httptransport.CreateStoreRequest) (httptransport.StoreResponse, error) {
	store, err := h.Service.CreateStore(ctx, application.CreateStoreInput{
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		return httptransport.StoreResponse{}, err
	}
	return httptransport.StoreResponse{Store: MapStore(store, nil)}, nil
}

// GetStoreHandler attaches the caller's own rating when userRatings has one.
func (h Handler) GetStoreHandler(ctx context.Context, storeID string, userRatings map[string]int) (httptransport.StoreDTO, error) {
	store, err := h.Service.GetStore(ctx, storeID)
	if err != nil {
		return httptransport.StoreDTO{}, err
	}
	return MapStore(store, userRatings), nil
}

func (h Handler) ListStoresHandler(
	ctx context.Context,
	query httptransport.ListStoresQuery,
	userRatings map[string]int,
) (httptransport.ListStoresResponse, error) {
	items, err := h.Service.ListStores(ctx, application.ListStoresInput{
		Name:      query.Name,
		Email:     query.Email,
		Address:   query.Address,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return httptransport.ListStoresResponse{}, err
	}
	resp := httptransport.ListStoresResponse{Stores: make([]httptransport.StoreDTO, 0, len(items))}
	for _, item := range items {
		resp.Stores = append(resp.Stores, MapStore(item, userRatings))
	}
	return resp, nil
}

func (h Handler) UpdateStoreHandler(
	ctx context.Context,
	storeID string,
	req httptransport.UpdateStoreRequest,
) (httptransport.StoreResponse, error) {
	store, err := h.Service.UpdateStore(ctx, storeID, application.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return httptransport.StoreResponse{}, err
	}
	return httptransport.StoreResponse{Store: MapStore(store, nil)}, nil
}

func (h Handler) DeleteStoreHandler(ctx context.Context, storeID string) (httptransport.MessageResponse, error) {
	if err := h.Service.DeleteStore(ctx, storeID); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "store deleted"}, nil
}

func (h Handler) OwnerStoreHandler(ctx context.Context, ownerID string) (httptransport.StoreDTO, error) {
	store, err := h.Service.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return httptransport.StoreDTO{}, err
	}
	return MapStore(store, nil), nil
}

func (h Handler) StatsHandler(ctx context.Context) (httptransport.StoreStatsResponse, error) {
	stats, err := h.Service.Stats(ctx)
	if err != nil {
		return httptransport.StoreStatsResponse{}, err
	}
	return httptransport.StoreStatsResponse{
		TotalStores:       stats.TotalStores,
		StoresWithRatings: stats.StoresWithRatings,
		OverallAverage:    stats.OverallAverage,
	}, nil
}

func MapStore(store entities.Store, userRatings map[string]int) httptransport.StoreDTO {
	dto := httptransport.StoreDTO{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		OwnerID:       store.OwnerID,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
		CreatedAt:     store.CreatedAt,
		UpdatedAt:     store.UpdatedAt,
	}
	if value, ok := userRatings[store.ID]; ok {
		dto.UserRating = &value
	}
	return dto
}
