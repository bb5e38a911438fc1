package services

import (
	"math"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
)

const (
	MinValue = 1
	MaxValue = 5
)

func ValidValue(value int) bool {
	return value >= MinValue && value <= MaxValue
}

// Aggregate computes the mean and count of values. An empty set is 0/0.
func Aggregate(values []int) (float64, int) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0
	for _, value := range values {
		sum += value
	}
	return float64(sum) / float64(len(values)), len(values)
}

// Consistent reports whether a stored aggregate matches the given ratings.
func Consistent(store entities.StoreAggregate, values []int) bool {
	average, total := Aggregate(values)
	return store.TotalRatings == total && math.Abs(store.AverageRating-average) <= 1e-9
}
