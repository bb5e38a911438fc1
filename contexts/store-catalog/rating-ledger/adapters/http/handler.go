package httpadapter

import (
	"context"
	"log/slog"

	"storerating/contexts/store-catalog/rating-ledger/application/commands"
	"storerating/contexts/store-catalog/rating-ledger/application/queries"
	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	httptransport "storerating/contexts/store-catalog/rating-ledger/transport/http"
)

type Handler struct {
	Submit      commands.SubmitRatingUseCase
	Update      commands.UpdateRatingUseCase
	Delete      commands.DeleteRatingUseCase
	GetMine     queries.GetMyRatingUseCase
	ByUser      queries.ListUserRatingsUseCase
	ByStore     queries.ListStoreRatingsUseCase
	UserRatings queries.UserRatingMapUseCase
	Stats       queries.StatsUseCase
	Logger      *slog.Logger
}

// SubmitRatingHandler expects value to be validated by the caller.
func (h Handler) SubmitRatingHandler(
	ctx context.Context,
	userID string,
	storeID string,
	value int,
) (httptransport.SubmitRatingResponse, error) {
	result, err := h.Submit.Execute(ctx, commands.SubmitRatingCommand{
		UserID:  userID,
		StoreID: storeID,
		Value:   value,
	})
	if err != nil {
		return httptransport.SubmitRatingResponse{}, err
	}
	message := "rating updated"
	if result.Created {
		message = "rating submitted"
	}
	return httptransport.SubmitRatingResponse{
		Message: message,
		Created: result.Created,
		Rating:  MapRating(entities.RatingView{Rating: result.Rating}),
		Store:   MapStoreSummary(result.Store),
	}, nil
}

func (h Handler) UpdateRatingHandler(ctx context.Context, ratingID string, value int) (httptransport.SubmitRatingResponse, error) {
	result, err := h.Update.Execute(ctx, commands.UpdateRatingCommand{RatingID: ratingID, Value: value})
	if err != nil {
		return httptransport.SubmitRatingResponse{}, err
	}
	return httptransport.SubmitRatingResponse{
		Message: "rating updated",
		Rating:  MapRating(entities.RatingView{Rating: result.Rating}),
		Store:   MapStoreSummary(result.Store),
	}, nil
}

func (h Handler) DeleteRatingHandler(ctx context.Context, ratingID string) (httptransport.DeleteRatingResponse, error) {
	store, err := h.Delete.Execute(ctx, commands.DeleteRatingCommand{RatingID: ratingID})
	if err != nil {
		return httptransport.DeleteRatingResponse{}, err
	}
	return httptransport.DeleteRatingResponse{
		Message: "rating deleted",
		Store:   MapStoreSummary(store),
	}, nil
}

func (h Handler) MyRatingHandler(ctx context.Context, userID string, storeID string) (httptransport.RatingResponse, error) {
	rating, err := h.GetMine.Execute(ctx, userID, storeID)
	if err != nil {
		return httptransport.RatingResponse{}, err
	}
	return httptransport.RatingResponse{Rating: MapRating(entities.RatingView{Rating: rating})}, nil
}

func (h Handler) UserRatingsHandler(ctx context.Context, userID string) (httptransport.ListRatingsResponse, error) {
	items, err := h.ByUser.Execute(ctx, userID)
	if err != nil {
		return httptransport.ListRatingsResponse{}, err
	}
	return httptransport.ListRatingsResponse{Ratings: MapRatings(items)}, nil
}

func (h Handler) StoreRatingsHandler(ctx context.Context, storeID string) (httptransport.StoreRatingsResponse, error) {
	result, err := h.ByStore.Execute(ctx, storeID)
	if err != nil {
		return httptransport.StoreRatingsResponse{}, err
	}
	return httptransport.StoreRatingsResponse{
		Store:   MapStoreSummary(result.Store),
		Ratings: MapRatings(result.Ratings),
	}, nil
}

// RatingValues returns the user's rating per store id for listing enrichment.
func (h Handler) RatingValues(ctx context.Context, userID string) (map[string]int, error) {
	return h.UserRatings.Execute(ctx, userID)
}

func (h Handler) StatsHandler(ctx context.Context) (httptransport.RatingStatsResponse, error) {
	stats, err := h.Stats.Execute(ctx)
	if err != nil {
		return httptransport.RatingStatsResponse{}, err
	}
	return httptransport.RatingStatsResponse{
		TotalRatings:  stats.TotalRatings,
		AverageRating: stats.AverageRating,
		UniqueRaters:  stats.UniqueRaters,
		RatedStores:   stats.RatedStores,
	}, nil
}

func MapRating(view entities.RatingView) httptransport.RatingDTO {
	return httptransport.RatingDTO{
		ID:           view.ID,
		UserID:       view.UserID,
		StoreID:      view.StoreID,
		Rating:       view.Value,
		StoreName:    view.StoreName,
		StoreAddress: view.StoreAddress,
		UserName:     view.UserName,
		UserEmail:    view.UserEmail,
		CreatedAt:    view.CreatedAt,
		UpdatedAt:    view.UpdatedAt,
	}
}

func MapRatings(items []entities.RatingView) []httptransport.RatingDTO {
	out := make([]httptransport.RatingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, MapRating(item))
	}
	return out
}

func MapStoreSummary(store entities.StoreAggregate) httptransport.StoreSummaryDTO {
	return httptransport.StoreSummaryDTO{
		ID:            store.StoreID,
		Name:          store.Name,
		Address:       store.Address,
		AverageRating: store.AverageRating,
		TotalRatings:  store.TotalRatings,
	}
}
