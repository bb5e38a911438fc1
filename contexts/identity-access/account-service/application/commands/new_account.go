package commands

import (
	"context"
	"strings"
	"time"

	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"
)

type accountInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     identity.Role
}

type accountWriter struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateAccount(input accountInput) error {
	return validation.Collect(
		validation.Name("name", strings.TrimSpace(input.Name)),
		validation.Email("email", input.Email),
		validation.Password("password", input.Password),
		validation.Address("address", strings.TrimSpace(input.Address)),
	)
}

// create hashes the password and inserts the account. Duplicate emails
// surface from the repository as ErrEmailTaken.
func (w accountWriter) create(ctx context.Context, input accountInput) (entities.User, error) {
	hash, err := w.Hasher.Hash(input.Password)
	if err != nil {
		return entities.User{}, err
	}
	id, err := w.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := w.now()
	user := entities.User{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Address:      strings.TrimSpace(input.Address),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := w.Users.CreateUser(ctx, user); err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (w accountWriter) now() time.Time {
	if w.Clock != nil {
		return w.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
