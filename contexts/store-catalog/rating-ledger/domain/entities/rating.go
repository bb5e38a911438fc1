package entities

import "time"

type Rating struct {
	ID        string
	UserID    string
	StoreID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingView is a rating joined with the display fields of its store and
// its author.
type RatingView struct {
	Rating
	StoreName    string
	StoreAddress string
	UserName     string
	UserEmail    string
}

// StoreAggregate is a store's materialized rating summary.
type StoreAggregate struct {
	StoreID       string
	Name          string
	Address       string
	AverageRating float64
	TotalRatings  int
}

// SubmitResult reports the stored rating, whether the call created it, and
// the store aggregate as of the same transaction.
type SubmitResult struct {
	Rating  Rating
	Created bool
	Store   StoreAggregate
}

type Stats struct {
	TotalRatings  int
	AverageRating float64
	UniqueRaters  int
	RatedStores   int
}
