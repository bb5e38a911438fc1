package queries

import (
	"context"
	"strings"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	"storerating/contexts/store-catalog/rating-ledger/ports"
)

type GetMyRatingUseCase struct {
	Ratings ports.Repository
}

// Execute returns ErrStoreNotFound for an unknown store and
// ErrRatingNotFound when the caller has not rated it.
func (u GetMyRatingUseCase) Execute(ctx context.Context, userID string, storeID string) (entities.Rating, error) {
	storeID = strings.TrimSpace(storeID)
	if _, err := u.Ratings.StoreAggregate(ctx, storeID); err != nil {
		return entities.Rating{}, err
	}
	return u.Ratings.GetByPair(ctx, strings.TrimSpace(userID), storeID)
}

// ListUserRatingsUseCase returns a user's ratings, most recently changed first.
type ListUserRatingsUseCase struct {
	Ratings ports.Repository
}

func (u ListUserRatingsUseCase) Execute(ctx context.Context, userID string) ([]entities.RatingView, error) {
	return u.Ratings.ListByUser(ctx, strings.TrimSpace(userID))
}

type StoreRatings struct {
	Store   entities.StoreAggregate
	Ratings []entities.RatingView
}

type ListStoreRatingsUseCase struct {
	Ratings ports.Repository
}

func (u ListStoreRatingsUseCase) Execute(ctx context.Context, storeID string) (StoreRatings, error) {
	storeID = strings.TrimSpace(storeID)
	store, err := u.Ratings.StoreAggregate(ctx, storeID)
	if err != nil {
		return StoreRatings{}, err
	}
	items, err := u.Ratings.ListByStore(ctx, storeID)
	if err != nil {
		return StoreRatings{}, err
	}
	return StoreRatings{Store: store, Ratings: items}, nil
}

// UserRatingMapUseCase maps store id to the user's rating value. Store
// listings use it to show the caller's own rating next to each store.
type UserRatingMapUseCase struct {
	Ratings ports.Repository
}

func (u UserRatingMapUseCase) Execute(ctx context.Context, userID string) (map[string]int, error) {
	return u.Ratings.ValuesByUser(ctx, strings.TrimSpace(userID))
}

type StatsUseCase struct {
	Ratings ports.Repository
}

func (u StatsUseCase) Execute(ctx context.Context) (entities.Stats, error) {
	return u.Ratings.Stats(ctx)
}
