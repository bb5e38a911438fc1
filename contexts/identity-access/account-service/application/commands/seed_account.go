package commands

import (
	"context"
	"errors"
	"log/slog"

	application "storerating/contexts/identity-access/account-service/application"
	"storerating/contexts/identity-access/account-service/domain/entities"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
)

type SeedAccountCommand struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     identity.Role
}

// SeedAccountUseCase creates a demo account, or resets its password when the
// email is already registered. Role and profile of an existing account are
// left untouched.
type SeedAccountUseCase struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u SeedAccountUseCase) Execute(ctx context.Context, cmd SeedAccountCommand) (entities.User, bool, error) {
	input := accountInput{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Address:  cmd.Address,
		Role:     cmd.Role,
	}
	if err := validateAccount(input); err != nil {
		return entities.User{}, false, err
	}

	writer := accountWriter{Users: u.Users, Hasher: u.Hasher, Clock: u.Clock, IDGenerator: u.IDGenerator}
	existing, err := u.Users.GetUserByEmail(ctx, normalizeEmail(cmd.Email))
	switch {
	case errors.Is(err, domainerrors.ErrUserNotFound):
		user, err := writer.create(ctx, input)
		if err != nil {
			return entities.User{}, false, err
		}
		u.log(user, "created")
		return user, true, nil
	case err != nil:
		return entities.User{}, false, err
	}

	hash, err := u.Hasher.Hash(cmd.Password)
	if err != nil {
		return entities.User{}, false, err
	}
	now := writer.now()
	if err := u.Users.UpdatePassword(ctx, existing.ID, hash, now); err != nil {
		return entities.User{}, false, err
	}
	existing.PasswordHash = hash
	existing.UpdatedAt = now
	u.log(existing, "password_reset")
	return existing, false, nil
}

func (u SeedAccountUseCase) log(user entities.User, outcome string) {
	application.ResolveLogger(u.Logger).Info("seed account applied",
		"event", "account_seeded",
		"module", application.Module,
		"layer", "application",
		"user_id", user.ID,
		"role", user.Role.String(),
		"outcome", outcome,
	)
}
