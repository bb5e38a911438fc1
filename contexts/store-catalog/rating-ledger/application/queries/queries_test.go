package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"storerating/contexts/store-catalog/rating-ledger/adapters/memory"
	domainerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	"storerating/internal/platform/memdb"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	db := memdb.New()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, row := range []memdb.UserRow{
		{ID: "user-1", Name: "Alexandra Catherine Wood", Email: "one@example.com", Role: "user", CreatedAt: base},
		{ID: "user-2", Name: "Jonathan Alexander Wright", Email: "two@example.com", Role: "user", CreatedAt: base},
	} {
		if err := db.InsertUser(row); err != nil {
			t.Fatal(err)
		}
	}
	for _, row := range []memdb.StoreRow{
		{ID: "store-1", Name: "Corner Coffee", Email: "coffee@example.com", Address: "1 Main St", CreatedAt: base},
		{ID: "store-2", Name: "Book Nook", Email: "books@example.com", Address: "2 Side St", CreatedAt: base},
		{ID: "store-3", Name: "Empty", Email: "empty@example.com", Address: "3 Back St", CreatedAt: base},
	} {
		if err := db.InsertStore(row); err != nil {
			t.Fatal(err)
		}
	}
	writes := []struct {
		id, user, store string
		value           int
		at              time.Time
	}{
		{"r-1", "user-1", "store-1", 4, base.Add(time.Minute)},
		{"r-2", "user-1", "store-2", 2, base.Add(2 * time.Minute)},
		{"r-3", "user-2", "store-1", 5, base.Add(3 * time.Minute)},
	}
	for _, w := range writes {
		if _, _, err := db.UpsertRating(w.id, w.user, w.store, w.value, w.at); err != nil {
			t.Fatal(err)
		}
	}
	return memory.NewStore(db)
}

func TestListUserRatingsNewestFirstWithStoreFields(t *testing.T) {
	store := seed(t)
	items, err := ListUserRatingsUseCase{Ratings: store}.Execute(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].StoreID != "store-2" || items[1].StoreID != "store-1" {
		t.Fatalf("unexpected order: %+v", items)
	}
	if items[0].StoreName != "Book Nook" || items[0].StoreAddress != "2 Side St" {
		t.Fatalf("missing store fields: %+v", items[0])
	}
}

func TestListStoreRatingsCarriesSummaryAndAuthors(t *testing.T) {
	store := seed(t)
	result, err := ListStoreRatingsUseCase{Ratings: store}.Execute(context.Background(), "store-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Store.TotalRatings != 2 || result.Store.AverageRating != 4.5 {
		t.Fatalf("unexpected summary: %+v", result.Store)
	}
	if len(result.Ratings) != 2 || result.Ratings[0].UserEmail != "two@example.com" {
		t.Fatalf("unexpected ratings: %+v", result.Ratings)
	}

	if _, err := (ListStoreRatingsUseCase{Ratings: store}).Execute(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrStoreNotFound) {
		t.Fatalf("expected store not found, got %v", err)
	}
}

func TestGetMyRating(t *testing.T) {
	store := seed(t)
	query := GetMyRatingUseCase{Ratings: store}

	rating, err := query.Execute(context.Background(), "user-2", "store-1")
	if err != nil || rating.Value != 5 {
		t.Fatalf("expected value 5, got %+v %v", rating, err)
	}
	if _, err := query.Execute(context.Background(), "user-2", "store-3"); !errors.Is(err, domainerrors.ErrRatingNotFound) {
		t.Fatalf("expected rating not found, got %v", err)
	}
	if _, err := query.Execute(context.Background(), "user-2", "missing"); !errors.Is(err, domainerrors.ErrStoreNotFound) {
		t.Fatalf("expected store not found, got %v", err)
	}
}

func TestUserRatingMapAndStats(t *testing.T) {
	store := seed(t)
	values, err := UserRatingMapUseCase{Ratings: store}.Execute(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != 2 || values["store-1"] != 4 || values["store-2"] != 2 {
		t.Fatalf("unexpected map: %v", values)
	}

	stats, err := StatsUseCase{Ratings: store}.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRatings != 3 || stats.UniqueRaters != 2 || stats.RatedStores != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.AverageRating < 3.66 || stats.AverageRating > 3.67 {
		t.Fatalf("unexpected average: %v", stats.AverageRating)
	}
}
