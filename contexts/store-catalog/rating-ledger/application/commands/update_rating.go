package commands

import (
	"context"
	"log/slog"
	"strings"

	application "storerating/contexts/store-catalog/rating-ledger/application"
	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	"storerating/contexts/store-catalog/rating-ledger/domain/services"
	"storerating/contexts/store-catalog/rating-ledger/ports"
)

const ratingResource = "rating"

type UpdateRatingCommand struct {
	RatingID string
	Value    int
}

// UpdateRatingUseCase changes the value of an existing rating. A missing
// rating is reported before ownership is checked.
type UpdateRatingUseCase struct {
	Ratings ports.Repository
	Gate    ports.AccessGate
	Clock   ports.Clock
	Logger  *slog.Logger
}

func (u UpdateRatingUseCase) Execute(ctx context.Context, cmd UpdateRatingCommand) (entities.SubmitResult, error) {
	if !services.ValidValue(cmd.Value) {
		return entities.SubmitResult{}, domainerrors.ErrInvalidValue
	}
	ratingID := strings.TrimSpace(cmd.RatingID)
	existing, err := u.Ratings.GetRating(ctx, ratingID)
	if err != nil {
		return entities.SubmitResult{}, err
	}
	if err := u.Gate.RequireOwner(ctx, ratingResource, existing.ID, existing.UserID); err != nil {
		return entities.SubmitResult{}, err
	}

	result, err := u.Ratings.UpdateValue(ctx, ratingID, cmd.Value, now(u.Clock))
	if err != nil {
		return entities.SubmitResult{}, err
	}

	application.ResolveLogger(u.Logger).Info("rating updated",
		"event", "rating_updated",
		"module", application.Module,
		"layer", "application",
		"rating_id", ratingID,
		"store_id", result.Rating.StoreID,
	)
	return result, nil
}
