package application

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"storerating/contexts/internal-ops/admin-dashboard-service/domain/entities"
	domainerrors "storerating/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"storerating/contexts/internal-ops/admin-dashboard-service/ports"
)

type Service struct {
	Users   ports.UserCounter
	Stores  ports.StoreCounter
	Ratings ports.RatingCounter
	Now     func() time.Time
	Logger  *slog.Logger
}

// Dashboard collects the three counters concurrently. The first failure
// cancels the others and is returned as is.
func (s Service) Dashboard(ctx context.Context) (entities.Dashboard, error) {
	if s.Users == nil || s.Stores == nil || s.Ratings == nil {
		return entities.Dashboard{}, domainerrors.ErrSourceMissing
	}

	var (
		users   ports.UserCounts
		stores  ports.StoreCounts
		ratings ports.RatingCounts
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		users, err = s.Users.CountUsers(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		stores, err = s.Stores.CountStores(groupCtx)
		return err
	})
	group.Go(func() error {
		var err error
		ratings, err = s.Ratings.CountRatings(groupCtx)
		return err
	})
	if err := group.Wait(); err != nil {
		ResolveLogger(s.Logger).Error("dashboard stats failed",
			"event", "admin_dashboard_stats_failed",
			"module", Module,
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Dashboard{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return entities.Dashboard{
		Admins:            users.Admins,
		Users:             users.Users,
		StoreOwners:       users.StoreOwners,
		TotalStores:       stores.TotalStores,
		StoresWithRatings: stores.StoresWithRatings,
		TotalRatings:      ratings.TotalRatings,
		AverageRating:     ratings.AverageRating,
		UniqueRaters:      ratings.UniqueRaters,
		GeneratedAt:       now().UTC(),
	}, nil
}
