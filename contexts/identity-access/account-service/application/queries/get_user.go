package queries

import (
	"context"
	"strings"

	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/contexts/identity-access/account-service/ports"
)

type GetUserUseCase struct {
	Users ports.UserRepository
}

func (u GetUserUseCase) Execute(ctx context.Context, userID string) (entities.User, error) {
	return u.Users.GetUser(ctx, strings.TrimSpace(userID))
}

// ByEmail looks an account up by its normalized email.
func (u GetUserUseCase) ByEmail(ctx context.Context, email string) (entities.User, error) {
	return u.Users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
