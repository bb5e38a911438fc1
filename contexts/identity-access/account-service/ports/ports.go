package ports

import (
	"context"
	"time"

	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"
)

var UserSortColumns = []string{"name", "email", "address", "role", "created_at"}

type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    identity.Role
	Sort    listing.Sort
}

type UserRepository interface {
	// CreateUser returns ErrEmailTaken when the email is already registered.
	CreateUser(ctx context.Context, user entities.User) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]entities.UserListing, error)
	UpdatePassword(ctx context.Context, userID string, passwordHash string, updatedAt time.Time) error
	// DeleteUser removes the user with their ratings and repairs the
	// aggregates of every affected store atomically.
	DeleteUser(ctx context.Context, userID string) error
	CountByRole(ctx context.Context) (map[identity.Role]int, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash string, password string) (bool, error)
}

type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the subject or ErrTokenMalformed / ErrTokenExpired.
	Verify(token string) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
