// Package bridges adapts one context's use cases to another context's ports
// so contexts never import each other.
package bridges

import (
	"context"
	"errors"

	accountqueries "storerating/contexts/identity-access/account-service/application/queries"
	accounterrors "storerating/contexts/identity-access/account-service/domain/errors"
	dashboardports "storerating/contexts/internal-ops/admin-dashboard-service/ports"
	ratingqueries "storerating/contexts/store-catalog/rating-ledger/application/queries"
	storeapplication "storerating/contexts/store-catalog/store-service/application"
	storeerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	storeports "storerating/contexts/store-catalog/store-service/ports"
	"storerating/internal/shared/identity"
)

// OwnerDirectory resolves store owners from the account context.
type OwnerDirectory struct {
	Users accountqueries.GetUserUseCase
}

func (d OwnerDirectory) LookupOwner(ctx context.Context, email string) (storeports.Owner, error) {
	user, err := d.Users.ByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, accounterrors.ErrUserNotFound):
			return storeports.Owner{}, storeerrors.ErrOwnerNotFound
		case errors.Is(err, accounterrors.ErrServiceUnavailable):
			return storeports.Owner{}, storeerrors.ErrServiceUnavailable
		}
		return storeports.Owner{}, err
	}
	return storeports.Owner{UserID: user.ID, Role: user.Role}, nil
}

type UserCounter struct {
	Counts accountqueries.CountByRoleUseCase
}

func (c UserCounter) CountUsers(ctx context.Context) (dashboardports.UserCounts, error) {
	counts, err := c.Counts.Execute(ctx)
	if err != nil {
		return dashboardports.UserCounts{}, err
	}
	return dashboardports.UserCounts{
		Admins:      counts[identity.RoleAdmin],
		Users:       counts[identity.RoleUser],
		StoreOwners: counts[identity.RoleStoreOwner],
	}, nil
}

type StoreCounter struct {
	Stores storeapplication.Service
}

func (c StoreCounter) CountStores(ctx context.Context) (dashboardports.StoreCounts, error) {
	stats, err := c.Stores.Stats(ctx)
	if err != nil {
		return dashboardports.StoreCounts{}, err
	}
	return dashboardports.StoreCounts{
		TotalStores:       stats.TotalStores,
		StoresWithRatings: stats.StoresWithRatings,
		OverallAverage:    stats.OverallAverage,
	}, nil
}

type RatingCounter struct {
	Stats ratingqueries.StatsUseCase
}

func (c RatingCounter) CountRatings(ctx context.Context) (dashboardports.RatingCounts, error) {
	stats, err := c.Stats.Execute(ctx)
	if err != nil {
		return dashboardports.RatingCounts{}, err
	}
	return dashboardports.RatingCounts{
		TotalRatings:  stats.TotalRatings,
		AverageRating: stats.AverageRating,
		UniqueRaters:  stats.UniqueRaters,
		RatedStores:   stats.RatedStores,
	}, nil
}
