package queries

import (
	"context"
	"strings"

	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/listing"
	"storerating/internal/shared/validation"
)

type ListUsersQuery struct {
	Name      string
	Email     string
	Address   string
	Role      string
	SortBy    string
	SortOrder string
}

type ListUsersUseCase struct {
	Users ports.UserRepository
}

// Execute filters by case-insensitive substring on name, email and address
// and by exact role. Unsupported sort keys fall back to created_at DESC.
func (u ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) ([]entities.UserListing, error) {
	filter := ports.UserFilter{
		Name:    strings.TrimSpace(query.Name),
		Email:   strings.TrimSpace(query.Email),
		Address: strings.TrimSpace(query.Address),
		Sort:    listing.NewSort(query.SortBy, query.SortOrder, ports.UserSortColumns),
	}
	if strings.TrimSpace(query.Role) != "" {
		role, err := identity.ParseRole(query.Role)
		if err != nil {
			return nil, validation.Errors{{Field: "role", Message: "role must be one of admin, user, store_owner"}}
		}
		filter.Role = role
	}
	return u.Users.ListUsers(ctx, filter)
}
