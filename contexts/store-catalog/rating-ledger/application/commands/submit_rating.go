package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "storerating/contexts/store-catalog/rating-ledger/application"
	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	"storerating/contexts/store-catalog/rating-ledger/domain/services"
	"storerating/contexts/store-catalog/rating-ledger/ports"
)

type SubmitRatingCommand struct {
	UserID  string
	StoreID string
	Value   int
}

// SubmitRatingUseCase creates the caller's rating for a store or replaces
// the value of the one they already have.
type SubmitRatingUseCase struct {
	Ratings     ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u SubmitRatingUseCase) Execute(ctx context.Context, cmd SubmitRatingCommand) (entities.SubmitResult, error) {
	if !services.ValidValue(cmd.Value) {
		return entities.SubmitResult{}, domainerrors.ErrInvalidValue
	}
	id, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.SubmitResult{}, err
	}
	now := now(u.Clock)
	result, err := u.Ratings.Upsert(ctx, entities.Rating{
		ID:        id,
		UserID:    strings.TrimSpace(cmd.UserID),
		StoreID:   strings.TrimSpace(cmd.StoreID),
		Value:     cmd.Value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return entities.SubmitResult{}, err
	}

	application.ResolveLogger(u.Logger).Info("rating submitted",
		"event", "rating_submitted",
		"module", application.Module,
		"layer", "application",
		"rating_id", result.Rating.ID,
		"store_id", result.Rating.StoreID,
		"user_id", result.Rating.UserID,
		"created", result.Created,
	)
	return result, nil
}

func now(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
