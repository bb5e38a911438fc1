package entities

import "time"

// Store is a rated business. OwnerID is empty when no owner is assigned or
// the owner account was deleted.
type Store struct {
	ID            string
	Name          string
	Email         string
	Address       string
	OwnerID       string
	AverageRating float64
	TotalRatings  int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Stats struct {
	TotalStores       int
	StoresWithRatings int
	// OverallAverage is the mean of average_rating over stores that have at
	// least one rating, zero when none do.
	OverallAverage float64
}
