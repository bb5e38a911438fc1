package ports

import (
	"context"
	"time"

	"storerating/contexts/store-catalog/store-service/domain/entities"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"
)

var StoreSortColumns = []string{"name", "email", "address", "average_rating", "created_at"}

type StoreFilter struct {
	Name    string
	Email   string
	Address string
	Sort    listing.Sort
}

type StoreUpdate struct {
	Name      string
	Email     string
	Address   string
	UpdatedAt time.Time
}

type Repository interface {
	// CreateStore returns ErrStoreEmailTaken or ErrOwnerAlreadyHasStore on
	// the matching unique constraint.
	CreateStore(ctx context.Context, store entities.Store) error
	GetStore(ctx context.Context, storeID string) (entities.Store, error)
	GetStoreByOwner(ctx context.Context, ownerID string) (entities.Store, error)
	ListStores(ctx context.Context, filter StoreFilter) ([]entities.Store, error)
	UpdateStore(ctx context.Context, storeID string, update StoreUpdate) (entities.Store, error)
	// DeleteStore removes the store and, by cascade, its ratings.
	DeleteStore(ctx context.Context, storeID string) error
	Stats(ctx context.Context) (entities.Stats, error)
}

// Owner is the slice of a user account store creation needs.
type Owner struct {
	UserID string
	Role   identity.Role
}

// OwnerDirectory resolves prospective owners by email. It returns
// ErrOwnerNotFound when no account has that email.
type OwnerDirectory interface {
	LookupOwner(ctx context.Context, email string) (Owner, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
