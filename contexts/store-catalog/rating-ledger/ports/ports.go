package ports

import (
	"context"
	"time"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
)

type Repository interface {
	// Upsert inserts or overwrites the rating for (UserID, StoreID) and
	// recomputes the store aggregate atomically. rating.ID is used only when
	// no row exists yet. Returns ErrStoreNotFound when the store is absent.
	Upsert(ctx context.Context, rating entities.Rating) (entities.SubmitResult, error)
	GetRating(ctx context.Context, ratingID string) (entities.Rating, error)
	GetByPair(ctx context.Context, userID string, storeID string) (entities.Rating, error)
	UpdateValue(ctx context.Context, ratingID string, value int, updatedAt time.Time) (entities.SubmitResult, error)
	Delete(ctx context.Context, ratingID string) (entities.StoreAggregate, error)
	ListByUser(ctx context.Context, userID string) ([]entities.RatingView, error)
	ListByStore(ctx context.Context, storeID string) ([]entities.RatingView, error)
	StoreAggregate(ctx context.Context, storeID string) (entities.StoreAggregate, error)
	ValuesByUser(ctx context.Context, userID string) (map[string]int, error)
	Stats(ctx context.Context) (entities.Stats, error)
}

// Reconciler repairs stores whose stored aggregate drifted from their ratings.
type Reconciler interface {
	ReconcileAggregates(ctx context.Context) (int, error)
}

// AccessGate answers ownership questions for ratings.
type AccessGate interface {
	RequireOwner(ctx context.Context, resourceType string, resourceID string, ownerID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
