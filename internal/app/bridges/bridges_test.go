package bridges

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	account "storerating/contexts/identity-access/account-service"
	authorization "storerating/contexts/identity-access/authorization-service"
	ratings "storerating/contexts/store-catalog/rating-ledger"
	store "storerating/contexts/store-catalog/store-service"
	storeerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	"storerating/internal/platform/memdb"
	"storerating/internal/shared/identity"
)

type world struct {
	db       *memdb.DB
	accounts account.Module
	stores   store.Module
	ledger   ratings.Module
}

func newWorld(t *testing.T) world {
	t.Helper()
	db := memdb.New()
	logger := slog.Default()
	accounts := account.NewInMemoryModule(db, "bridges-secret", logger)
	authz := authorization.NewModule(authorization.Dependencies{Logger: logger})
	return world{
		db:       db,
		accounts: accounts,
		stores:   store.NewInMemoryModule(db, OwnerDirectory{Users: accounts.Handler.GetUser}, logger),
		ledger:   ratings.NewInMemoryModule(db, authz.Gate, logger),
	}
}

func (w world) user(t *testing.T, id string, role identity.Role) {
	t.Helper()
	now := time.Now().UTC()
	if err := w.db.InsertUser(memdb.UserRow{
		ID: id, Name: "Bridge Test Account Holder", Email: id + "@example.com",
		Role: role.String(), CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("insert user: %v", err)
	}
}

func (w world) store(t *testing.T, id string, ownerID string) {
	t.Helper()
	now := time.Now().UTC()
	if err := w.db.InsertStore(memdb.StoreRow{
		ID: id, Name: "Store " + id, Email: id + "@shop.com", Address: "1 Road",
		OwnerID: ownerID, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("insert store: %v", err)
	}
}

func TestOwnerDirectoryResolvesAccounts(t *testing.T) {
	w := newWorld(t)
	w.user(t, "owner-1", identity.RoleStoreOwner)
	dir := OwnerDirectory{Users: w.accounts.Handler.GetUser}

	owner, err := dir.LookupOwner(context.Background(), "owner-1@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if owner.UserID != "owner-1" || owner.Role != identity.RoleStoreOwner {
		t.Fatalf("unexpected owner: %+v", owner)
	}

	if _, err := dir.LookupOwner(context.Background(), "nobody@example.com"); !errors.Is(err, storeerrors.ErrOwnerNotFound) {
		t.Fatalf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestCountersReflectEachContext(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	w.user(t, "admin-1", identity.RoleAdmin)
	w.user(t, "user-1", identity.RoleUser)
	w.user(t, "user-2", identity.RoleUser)
	w.user(t, "owner-1", identity.RoleStoreOwner)
	w.store(t, "store-1", "owner-1")
	w.store(t, "store-2", "")

	at := time.Now().UTC()
	for _, r := range []struct {
		id, user, store string
		value           int
	}{
		{"r-1", "user-1", "store-1", 4},
		{"r-2", "user-2", "store-1", 2},
		{"r-3", "user-1", "store-2", 5},
	} {
		if _, _, err := w.db.UpsertRating(r.id, r.user, r.store, r.value, at); err != nil {
			t.Fatalf("upsert rating: %v", err)
		}
	}

	users, err := UserCounter{Counts: w.accounts.Handler.CountByRole}.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users.Admins != 1 || users.Users != 2 || users.StoreOwners != 1 {
		t.Fatalf("unexpected user counts: %+v", users)
	}

	stores, err := StoreCounter{Stores: w.stores.Handler.Service}.CountStores(ctx)
	if err != nil {
		t.Fatalf("count stores: %v", err)
	}
	if stores.TotalStores != 2 || stores.StoresWithRatings != 2 || stores.OverallAverage != 4 {
		t.Fatalf("unexpected store counts: %+v", stores)
	}

	counts, err := RatingCounter{Stats: w.ledger.Handler.Stats}.CountRatings(ctx)
	if err != nil {
		t.Fatalf("count ratings: %v", err)
	}
	if counts.TotalRatings != 3 || counts.UniqueRaters != 2 || counts.RatedStores != 2 {
		t.Fatalf("unexpected rating counts: %+v", counts)
	}
	if counts.AverageRating < 3.66 || counts.AverageRating > 3.67 {
		t.Fatalf("expected mean of all ratings, got %v", counts.AverageRating)
	}
}
