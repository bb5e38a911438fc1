package application

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "storerating/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"storerating/contexts/internal-ops/admin-dashboard-service/ports"
)

type fakeUsers struct{ err error }

func (f fakeUsers) CountUsers(context.Context) (ports.UserCounts, error) {
	return ports.UserCounts{Admins: 1, Users: 4, StoreOwners: 2}, f.err
}

type fakeStores struct{}

func (fakeStores) CountStores(context.Context) (ports.StoreCounts, error) {
	return ports.StoreCounts{TotalStores: 3, StoresWithRatings: 2, OverallAverage: 3.5}, nil
}

// blockingRatings waits for cancellation so a sibling failure is observable.
type blockingRatings struct{}

func (blockingRatings) CountRatings(ctx context.Context) (ports.RatingCounts, error) {
	select {
	case <-ctx.Done():
		return ports.RatingCounts{}, ctx.Err()
	case <-time.After(time.Second):
		return ports.RatingCounts{}, errors.New("not cancelled")
	}
}

type fakeRatings struct{}

func (fakeRatings) CountRatings(context.Context) (ports.RatingCounts, error) {
	return ports.RatingCounts{TotalRatings: 9, AverageRating: 3.8, UniqueRaters: 4, RatedStores: 2}, nil
}

func TestDashboardCombinesSources(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := Service{
		Users:   fakeUsers{},
		Stores:  fakeStores{},
		Ratings: fakeRatings{},
		Now:     func() time.Time { return fixed },
	}
	got, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalUsers() != 7 || got.TotalStores != 3 || got.TotalRatings != 9 || got.AverageRating != 3.8 {
		t.Fatalf("unexpected dashboard: %+v", got)
	}
	if !got.GeneratedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamp: %v", got.GeneratedAt)
	}
}

func TestDashboardFailsFast(t *testing.T) {
	boom := errors.New("users unavailable")
	svc := Service{Users: fakeUsers{err: boom}, Stores: fakeStores{}, Ratings: blockingRatings{}}

	start := time.Now()
	_, err := svc.Dashboard(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected users error, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("sibling sources were not cancelled")
	}
}

func TestDashboardRequiresSources(t *testing.T) {
	if _, err := (Service{}).Dashboard(context.Background()); !errors.Is(err, domainerrors.ErrSourceMissing) {
		t.Fatalf("expected missing source, got %v", err)
	}
}
