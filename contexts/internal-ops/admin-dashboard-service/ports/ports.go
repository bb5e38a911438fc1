package ports

import "context"

type UserCounts struct {
	Admins      int
	Users       int
	StoreOwners int
}

type StoreCounts struct {
	TotalStores       int
	StoresWithRatings int
	OverallAverage    float64
}

type RatingCounts struct {
	TotalRatings  int
	AverageRating float64
	UniqueRaters  int
	RatedStores   int
}

// UserCounter, StoreCounter and RatingCounter are satisfied by bridges over
// the owning contexts; the dashboard never reads their tables directly.
type UserCounter interface {
	CountUsers(ctx context.Context) (UserCounts, error)
}

type StoreCounter interface {
	CountStores(ctx context.Context) (StoreCounts, error)
}

type RatingCounter interface {
	CountRatings(ctx context.Context) (RatingCounts, error)
}
