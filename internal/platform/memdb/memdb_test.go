package memdb

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func seed(t *testing.T) *DB {
	t.Helper()
	db := New()
	now := time.Now().UTC()
	users := []UserRow{
		{ID: "u-1", Email: "first@example.com", Role: "user", CreatedAt: now},
		{ID: "u-2", Email: "second@example.com", Role: "user", CreatedAt: now},
		{ID: "o-1", Email: "owner@example.com", Role: "store_owner", CreatedAt: now},
	}
	for _, row := range users {
		if err := db.InsertUser(row); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}
	if err := db.InsertStore(StoreRow{ID: "s-1", Email: "store@example.com", OwnerID: "o-1", CreatedAt: now}); err != nil {
		t.Fatalf("insert store: %v", err)
	}
	return db
}

func TestInsertUserRejectsDuplicateEmailIgnoringCase(t *testing.T) {
	db := seed(t)
	err := db.InsertUser(UserRow{ID: "u-3", Email: "FIRST@example.com"})
	var unique *UniqueError
	if !errors.As(err, &unique) || unique.Constraint != ConstraintUserEmail {
		t.Fatalf("expected email unique violation, got %v", err)
	}
	if !errors.Is(err, ErrUniqueViolation) {
		t.Fatalf("expected ErrUniqueViolation in chain, got %v", err)
	}
}

func TestInsertStoreEnforcesOneStorePerOwner(t *testing.T) {
	db := seed(t)
	err := db.InsertStore(StoreRow{ID: "s-2", Email: "other@example.com", OwnerID: "o-1"})
	var unique *UniqueError
	if !errors.As(err, &unique) || unique.Constraint != ConstraintStoreOwner {
		t.Fatalf("expected owner unique violation, got %v", err)
	}
	if err := db.InsertStore(StoreRow{ID: "s-3", Email: "x@example.com", OwnerID: "missing"}); !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestUpsertRatingKeepsOneRowPerPair(t *testing.T) {
	db := seed(t)
	now := time.Now().UTC()

	first, created, err := db.UpsertRating("r-1", "u-1", "s-1", 2, now)
	if err != nil || !created {
		t.Fatalf("expected created rating, got %v %v", created, err)
	}
	second, created, err := db.UpsertRating("r-2", "u-1", "s-1", 5, now.Add(time.Second))
	if err != nil || created {
		t.Fatalf("expected update, got %v %v", created, err)
	}
	if second.ID != first.ID || second.Value != 5 {
		t.Fatalf("expected same row overwritten, got %+v", second)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("created_at must survive an overwrite")
	}
	store, _ := db.GetStore("s-1")
	if store.TotalRatings != 1 || store.AverageRating != 5 {
		t.Fatalf("unexpected aggregate: %+v", store)
	}
}

func TestConcurrentUpsertsOnSamePairLeaveOneRow(t *testing.T) {
	db := seed(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, _ = db.UpsertRating(fmt.Sprintf("r-%d", i), "u-1", "s-1", i%5+1, time.Now().UTC())
		}(i)
	}
	wg.Wait()

	rows := db.Ratings(nil)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one rating, got %d", len(rows))
	}
	store, _ := db.GetStore("s-1")
	if store.TotalRatings != 1 || store.AverageRating != float64(rows[0].Value) {
		t.Fatalf("aggregate does not match surviving rating: %+v vs %+v", store, rows[0])
	}
}

func TestDeleteUserCascadesAndRecomputes(t *testing.T) {
	db := seed(t)
	now := time.Now().UTC()
	_, _, _ = db.UpsertRating("r-1", "u-1", "s-1", 1, now)
	_, _, _ = db.UpsertRating("r-2", "u-2", "s-1", 5, now)

	if err := db.DeleteUser("u-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	store, _ := db.GetStore("s-1")
	if store.TotalRatings != 1 || store.AverageRating != 5 {
		t.Fatalf("expected aggregate of remaining rating, got %+v", store)
	}
	if err := db.DeleteUser("o-1"); err != nil {
		t.Fatalf("delete owner: %v", err)
	}
	store, _ = db.GetStore("s-1")
	if store.OwnerID != "" {
		t.Fatalf("expected store detached from deleted owner, got %q", store.OwnerID)
	}
	if _, ok := db.GetUserByEmail("first@example.com"); ok {
		t.Fatal("deleted user's email must be released")
	}
}

func TestDeleteRatingResetsEmptyStore(t *testing.T) {
	db := seed(t)
	row, _, _ := db.UpsertRating("r-1", "u-1", "s-1", 4, time.Now().UTC())
	if _, err := db.DeleteRating(row.ID); err != nil {
		t.Fatalf("delete rating: %v", err)
	}
	store, _ := db.GetStore("s-1")
	if store.TotalRatings != 0 || store.AverageRating != 0 {
		t.Fatalf("expected empty aggregate, got %+v", store)
	}
	if _, err := db.DeleteRating(row.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReconcileAggregatesRepairsDrift(t *testing.T) {
	db := seed(t)
	_, _, _ = db.UpsertRating("r-1", "u-1", "s-1", 3, time.Now().UTC())
	if err := db.SetStoreAggregate("s-1", 1, 9); err != nil {
		t.Fatalf("set aggregate: %v", err)
	}
	if fixed := db.ReconcileAggregates(); fixed != 1 {
		t.Fatalf("expected 1 repaired store, got %d", fixed)
	}
	if fixed := db.ReconcileAggregates(); fixed != 0 {
		t.Fatalf("expected no drift on second pass, got %d", fixed)
	}
}
