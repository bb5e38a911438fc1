package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"storerating/contexts/identity-access/account-service/domain/entities"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/platform/memdb"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"

	"github.com/google/uuid"
)

// Store adapts the shared in-memory database to the account ports.
type Store struct {
	db  *memdb.DB
	now func() time.Time
}

func NewStore(db *memdb.DB) *Store {
	if db == nil {
		db = memdb.New()
	}
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) DB() *memdb.DB {
	return s.db
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	err := s.db.InsertUser(memdb.UserRow{
		ID:           user.ID,
		Name:         user.Name,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		Address:      user.Address,
		Role:         user.Role.String(),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if errors.Is(err, memdb.ErrUniqueViolation) {
		return domainerrors.ErrEmailTaken
	}
	return err
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	row, ok := s.db.GetUser(strings.TrimSpace(userID))
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return toEntity(row)
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	row, ok := s.db.GetUserByEmail(email)
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return toEntity(row)
}

func (s *Store) ListUsers(_ context.Context, filter ports.UserFilter) ([]entities.UserListing, error) {
	items := make([]entities.UserListing, 0)
	for _, row := range s.db.Users() {
		if !listing.Contains(row.Name, filter.Name) ||
			!listing.Contains(row.Email, filter.Email) ||
			!listing.Contains(row.Address, filter.Address) {
			continue
		}
		if filter.Role.Valid() && row.Role != filter.Role.String() {
			continue
		}
		user, err := toEntity(row)
		if err != nil {
			return nil, err
		}
		item := entities.UserListing{User: user}
		if store, ok := s.db.GetStoreByOwner(row.ID); ok {
			rating := store.AverageRating
			item.StoreID = store.ID
			item.StoreRating = &rating
		}
		items = append(items, item)
	}

	sortSpec := filter.Sort
	if sortSpec.Column == "" {
		sortSpec = listing.NewSort("", "", ports.UserSortColumns)
	}
	sort.SliceStable(items, func(i, j int) bool {
		cmp := compareUsers(items[i].User, items[j].User, sortSpec.Column)
		if sortSpec.Desc() {
			return cmp > 0
		}
		return cmp < 0
	})
	return items, nil
}

func (s *Store) UpdatePassword(_ context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	if err := s.db.UpdateUserPassword(strings.TrimSpace(userID), passwordHash, updatedAt); err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	if err := s.db.DeleteUser(strings.TrimSpace(userID)); err != nil {
		if errors.Is(err, memdb.ErrNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Store) CountByRole(_ context.Context) (map[identity.Role]int, error) {
	out := make(map[identity.Role]int)
	for _, row := range s.db.Users() {
		role, err := identity.ParseRole(row.Role)
		if err != nil {
			continue
		}
		out[role]++
	}
	return out, nil
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func compareUsers(a entities.User, b entities.User, column string) int {
	switch column {
	case "name":
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case "email":
		return strings.Compare(a.Email, b.Email)
	case "address":
		return strings.Compare(strings.ToLower(a.Address), strings.ToLower(b.Address))
	case "role":
		return strings.Compare(a.Role.String(), b.Role.String())
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func toEntity(row memdb.UserRow) (entities.User, error) {
	role, err := identity.ParseRole(row.Role)
	if err != nil {
		return entities.User{}, err
	}
	return entities.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Address:      row.Address,
		Role:         role,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
