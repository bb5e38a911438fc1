package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storerating/contexts/store-catalog/store-service/domain/entities"
	domainerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	"storerating/contexts/store-catalog/store-service/ports"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"
	"storerating/internal/shared/validation"
)

type Service struct {
	Repo        ports.Repository
	Owners      ports.OwnerDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

type CreateStoreInput struct {
	Name       string
	Email      string
	Address    string
	OwnerEmail string
}

type UpdateStoreInput struct {
	Name    string
	Email   string
	Address string
}

type ListStoresInput struct {
	Name      string
	Email     string
	Address   string
	SortBy    string
	SortOrder string
}

func validateStore(name string, email string, address string) error {
	return validation.Collect(
		validation.StoreName("name", name),
		validation.Email("email", email),
		validation.RequiredAddress("address", strings.TrimSpace(address)),
	)
}

// CreateStore resolves the optional owner by email before inserting. New
// stores always start with zero ratings.
func (s Service) CreateStore(ctx context.Context, input CreateStoreInput) (entities.Store, error) {
	ownerEmail := strings.TrimSpace(input.OwnerEmail)
	results := []*validation.Error{
		validation.StoreName("name", input.Name),
		validation.Email("email", input.Email),
		validation.RequiredAddress("address", strings.TrimSpace(input.Address)),
	}
	if ownerEmail != "" {
		results = append(results, validation.Email("owner_email", ownerEmail))
	}
	if err := validation.Collect(results...); err != nil {
		return entities.Store{}, err
	}

	ownerID := ""
	if ownerEmail != "" {
		owner, err := s.Owners.LookupOwner(ctx, strings.ToLower(ownerEmail))
		if err != nil {
			return entities.Store{}, err
		}
		if owner.Role != identity.RoleStoreOwner {
			return entities.Store{}, domainerrors.ErrInvalidOwnerRole
		}
		ownerID = owner.UserID
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Store{}, err
	}
	now := s.now()
	store := entities.Store{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Address:   strings.TrimSpace(input.Address),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.CreateStore(ctx, store); err != nil {
		return entities.Store{}, err
	}

	ResolveLogger(s.Logger).Info("store created",
		"event", "store_created",
		"module", Module,
		"layer", "application",
		"store_id", store.ID,
		"owner_id", store.OwnerID,
	)
	return store, nil
}

func (s Service) GetStore(ctx context.Context, storeID string) (entities.Store, error) {
	return s.Repo.GetStore(ctx, strings.TrimSpace(storeID))
}

// GetStoreByOwner returns ErrStoreNotFound when the owner has no store.
func (s Service) GetStoreByOwner(ctx context.Context, ownerID string) (entities.Store, error) {
	return s.Repo.GetStoreByOwner(ctx, strings.TrimSpace(ownerID))
}

func (s Service) ListStores(ctx context.Context, input ListStoresInput) ([]entities.Store, error) {
	return s.Repo.ListStores(ctx, ports.StoreFilter{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Address: strings.TrimSpace(input.Address),
		Sort:    listing.NewSort(input.SortBy, input.SortOrder, ports.StoreSortColumns),
	})
}

// UpdateStore replaces name, email and address. Ownership and aggregates are
// not writable here.
func (s Service) UpdateStore(ctx context.Context, storeID string, input UpdateStoreInput) (entities.Store, error) {
	if err := validateStore(input.Name, input.Email, input.Address); err != nil {
		return entities.Store{}, err
	}
	store, err := s.Repo.UpdateStore(ctx, strings.TrimSpace(storeID), ports.StoreUpdate{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Address:   strings.TrimSpace(input.Address),
		UpdatedAt: s.now(),
	})
	if err != nil {
		return entities.Store{}, err
	}

	ResolveLogger(s.Logger).Info("store updated",
		"event", "store_updated",
		"module", Module,
		"layer", "application",
		"store_id", store.ID,
	)
	return store, nil
}

func (s Service) DeleteStore(ctx context.Context, storeID string) error {
	storeID = strings.TrimSpace(storeID)
	if err := s.Repo.DeleteStore(ctx, storeID); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("store deleted",
		"event", "store_deleted",
		"module", Module,
		"layer", "application",
		"store_id", storeID,
	)
	return nil
}

func (s Service) Stats(ctx context.Context) (entities.Stats, error) {
	return s.Repo.Stats(ctx)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
