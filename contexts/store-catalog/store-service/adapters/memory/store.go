package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"storerating/contexts/store-catalog/store-service/domain/entities"
	domainerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	"storerating/contexts/store-catalog/store-service/ports"
	"storerating/internal/platform/memdb"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"

	"github.com/google/uuid"
)

type Store struct {
	db *memdb.DB
}

func NewStore(db *memdb.DB) *Store {
	if db == nil {
		db = memdb.New()
	}
	return &Store{db: db}
}

func (s *Store) CreateStore(_ context.Context, store entities.Store) error {
	err := s.db.InsertStore(memdb.StoreRow{
		ID:        store.ID,
		Name:      store.Name,
		Email:     strings.ToLower(strings.TrimSpace(store.Email)),
		Address:   store.Address,
		OwnerID:   store.OwnerID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	})
	var unique *memdb.UniqueError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &unique) && unique.Constraint == memdb.ConstraintStoreOwner:
		return domainerrors.ErrOwnerAlreadyHasStore
	case errors.Is(err, memdb.ErrUniqueViolation):
		return domainerrors.ErrStoreEmailTaken
	case errors.Is(err, memdb.ErrForeignKeyViolation):
		return domainerrors.ErrOwnerNotFound
	default:
		return err
	}
}

func (s *Store) GetStore(_ context.Context, storeID string) (entities.Store, error) {
	row, ok := s.db.GetStore(strings.TrimSpace(storeID))
	if !ok {
		return entities.Store{}, domainerrors.ErrStoreNotFound
	}
	return toEntity(row), nil
}

func (s *Store) GetStoreByOwner(_ context.Context, ownerID string) (entities.Store, error) {
	row, ok := s.db.GetStoreByOwner(strings.TrimSpace(ownerID))
	if !ok {
		return entities.Store{}, domainerrors.ErrStoreNotFound
	}
	return toEntity(row), nil
}

func (s *Store) ListStores(_ context.Context, filter ports.StoreFilter) ([]entities.Store, error) {
	items := make([]entities.Store, 0)
	for _, row := range s.db.Stores() {
		if !listing.Contains(row.Name, filter.Name) ||
			!listing.Contains(row.Email, filter.Email) ||
			!listing.Contains(row.Address, filter.Address) {
			continue
		}
		items = append(items, toEntity(row))
	}
	sortSpec := filter.Sort
	if sortSpec.Column == "" {
		sortSpec = listing.NewSort("", "", ports.StoreSortColumns)
	}
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareStores(items[i], items[j], sortSpec.Column)
		if sortSpec.Desc() {
			return cmp > 0
		}
		return cmp < 0
	})
	return items, nil
}

func (s *Store) UpdateStore(_ context.Context, storeID string, update ports.StoreUpdate) (entities.Store, error) {
	row, err := s.db.UpdateStore(strings.TrimSpace(storeID), update.Name, update.Email, update.Address, update.UpdatedAt)
	switch {
	case err == nil:
		return toEntity(row), nil
	case errors.Is(err, memdb.ErrNotFound):
		return entities.Store{}, domainerrors.ErrStoreNotFound
	case errors.Is(err, memdb.ErrUniqueViolation):
		return entities.Store{}, domainerrors.ErrStoreEmailTaken
	default:
		return entities.Store{}, err
	}
}

func (s *Store) DeleteStore(_ context.Context, storeID string) error {
	if err := s.db.DeleteStore(strings.TrimSpace(storeID)); err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return domainerrors.ErrStoreNotFound
		}
		return err
	}
	return nil
}

func (s *Store) Stats(_ context.Context) (entities.Stats, error) {
	stats := entities.Stats{}
	sum := 0.0
	for _, row := range s.db.Stores() {
		stats.TotalStores++
		if row.TotalRatings > 0 {
			stats.StoresWithRatings++
			sum += row.AverageRating
		}
	}
	if stats.StoresWithRatings > 0 {
		stats.OverallAverage = sum / float64(stats.StoresWithRatings)
	}
	return stats, nil
}

// LookupOwner implements ports.OwnerDirectory straight off the users table
// for memory-backed setups that do not wire the account module.
func (s *Store) LookupOwner(_ context.Context, email string) (ports.Owner, error) {
	row, ok := s.db.GetUserByEmail(email)
	if !ok {
		return ports.Owner{}, domainerrors.ErrOwnerNotFound
	}
	role, err := identity.ParseRole(row.Role)
	if err != nil {
		return ports.Owner{}, domainerrors.ErrInvalidOwnerRole
	}
	return ports.Owner{UserID: row.ID, Role: role}, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func compareStores(a entities.Store, b entities.Store, column string) int {
	switch column {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "address":
		return strings.Compare(strings.ToLower(a.Address), strings.ToLower(b.Address))
	case "average_rating":
		switch {
		case a.AverageRating < b.AverageRating:
			return -1
		case a.AverageRating > b.AverageRating:
			return 1
		}
		return 0
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func toEntity(row memdb.StoreRow) entities.Store {
	return entities.Store{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Address:       row.Address,
		OwnerID:       row.OwnerID,
		AverageRating: row.AverageRating,
		TotalRatings:  row.TotalRatings,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
