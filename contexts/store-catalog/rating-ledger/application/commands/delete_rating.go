package commands

import (
	"context"
	"log/slog"
	"strings"

	application "storerating/contexts/store-catalog/rating-ledger/application"
	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	"storerating/contexts/store-catalog/rating-ledger/ports"
)

type DeleteRatingCommand struct {
	RatingID string
}

type DeleteRatingUseCase struct {
	Ratings ports.Repository
	Gate    ports.AccessGate
	Logger  *slog.Logger
}

// Execute returns the store aggregate after the rating is gone.
func (u DeleteRatingUseCase) Execute(ctx context.Context, cmd DeleteRatingCommand) (entities.StoreAggregate, error) {
	ratingID := strings.TrimSpace(cmd.RatingID)
	existing, err := u.Ratings.GetRating(ctx, ratingID)
	if err != nil {
		return entities.StoreAggregate{}, err
	}
	if err := u.Gate.RequireOwner(ctx, ratingResource, existing.ID, existing.UserID); err != nil {
		return entities.StoreAggregate{}, err
	}

	store, err := u.Ratings.Delete(ctx, ratingID)
	if err != nil {
		return entities.StoreAggregate{}, err
	}

	application.ResolveLogger(u.Logger).Info("rating deleted",
		"event", "rating_deleted",
		"module", application.Module,
		"layer", "application",
		"rating_id", ratingID,
		"store_id", existing.StoreID,
	)
	return store, nil
}
