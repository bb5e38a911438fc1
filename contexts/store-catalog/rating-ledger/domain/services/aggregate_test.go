package services

import (
	"testing"

	"storerating/contexts/store-catalog/rating-ledger/domain/entities"
)

func TestAggregate(t *testing.T) {
	if avg, total := Aggregate(nil); avg != 0 || total != 0 {
		t.Fatalf("expected empty aggregate, got %v/%d", avg, total)
	}
	if avg, total := Aggregate([]int{4, 5, 3}); avg != 4 || total != 3 {
		t.Fatalf("expected 4/3, got %v/%d", avg, total)
	}
	if avg, _ := Aggregate([]int{1, 2}); avg != 1.5 {
		t.Fatalf("expected exact mean 1.5, got %v", avg)
	}
}

func TestConsistent(t *testing.T) {
	store := entities.StoreAggregate{AverageRating: 3, TotalRatings: 2}
	if !Consistent(store, []int{2, 4}) {
		t.Fatal("expected consistent aggregate")
	}
	if Consistent(store, []int{2, 4, 3}) {
		t.Fatal("expected count drift detected")
	}
	if Consistent(entities.StoreAggregate{}, []int{1}) {
		t.Fatal("expected empty store with rating to be inconsistent")
	}
}

func TestValidValue(t *testing.T) {
	for value := -1; value <= 7; value++ {
		want := value >= 1 && value <= 5
		if ValidValue(value) != want {
			t.Fatalf("ValidValue(%d) = %v", value, !want)
		}
	}
}
