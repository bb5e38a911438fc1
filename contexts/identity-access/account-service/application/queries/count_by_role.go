package queries

import (
	"context"

	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
)

type CountByRoleUseCase struct {
	Users ports.UserRepository
}

// Execute always returns an entry for every role, zero when absent.
func (u CountByRoleUseCase) Execute(ctx context.Context) (map[identity.Role]int, error) {
	counts, err := u.Users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[identity.Role]int, len(identity.Roles()))
	for _, role := range identity.Roles() {
		out[role] = counts[role]
	}
	return out, nil
}
