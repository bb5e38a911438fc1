package httpserver

import (
	"net/http"
	"testing"
	"time"

	accounthttp "storerating/contexts/identity-access/account-service/transport/http"
	dashboardhttp "storerating/contexts/internal-ops/admin-dashboard-service/transport/http"
	ratinghttp "storerating/contexts/store-catalog/rating-ledger/transport/http"
)

func TestUserAdminRoutesRejectOtherRoles(t *testing.T) {
	env := newTestServer(t)
	_, userToken := env.seedUser(t, "user")
	_, ownerToken := env.seedUser(t, "store_owner")

	for _, token := range []string{userToken, ownerToken} {
		expectError(t, env.do(http.MethodGet, "/users", token, ""), http.StatusForbidden, "forbidden_role")
		expectError(t, env.do(http.MethodGet, "/api/users/stats", token, ""), http.StatusForbidden, "forbidden_role")
		expectError(t, env.do(http.MethodPost, "/users", token, `{}`), http.StatusForbidden, "forbidden_role")
	}
}

func TestAdminCreatesAndFiltersUsers(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")

	rr := env.do(http.MethodPost, "/users", adminToken,
		`{"name":"Jonathan Alexander Wright","email":"owner@shop.example.com","password":"Passw0rd!x","role":"store_owner"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created accounthttp.UserResponse
	decodeBody(t, rr, &created)
	if created.User.Role != "store_owner" {
		t.Fatalf("unexpected role: %+v", created.User)
	}

	rr = env.do(http.MethodGet, "/users?role=store_owner&sortBy=email&sortOrder=asc", adminToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list accounthttp.ListUsersResponse
	decodeBody(t, rr, &list)
	if len(list.Users) != 1 || list.Users[0].ID != created.User.ID {
		t.Fatalf("unexpected filtered users: %+v", list.Users)
	}

	expectError(t, env.do(http.MethodGet, "/users?role=root", adminToken, ""), http.StatusBadRequest, "validation_error")
	expectError(t,
		env.do(http.MethodPost, "/users", adminToken, `{"name":"Jonathan Alexander Wright","email":"x@example.com","password":"Passw0rd!x","role":"root"}`),
		http.StatusBadRequest, "validation_error")
}

func TestGetUserValidatesIDAndAttachesOwnedStore(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	ownerID, _ := env.seedUser(t, "store_owner")
	storeID := env.seedStore(t, ownerID)

	expectError(t, env.do(http.MethodGet, "/users/not-a-uuid", adminToken, ""), http.StatusBadRequest, "validation_error")
	expectError(t, env.do(http.MethodGet, "/users/6f1c2d7e-0000-4000-8000-000000000000", adminToken, ""), http.StatusNotFound, "not_found")

	rr := env.do(http.MethodGet, "/users/"+ownerID, adminToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var detail userDetailResponse
	decodeBody(t, rr, &detail)
	if detail.Store == nil || detail.Store.ID != storeID {
		t.Fatalf("expected owned store, got %+v", detail.Store)
	}
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	env := newTestServer(t)
	adminID, adminToken := env.seedUser(t, "admin")
	expectError(t, env.do(http.MethodDelete, "/users/"+adminID, adminToken, ""), http.StatusBadRequest, "invalid_operation")
	if _, ok := env.db.GetUser(adminID); !ok {
		t.Fatal("self-deletion attempt must leave the account in place")
	}
}

func TestAdminDeletesAnotherAdmin(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	otherAdminID, _ := env.seedUser(t, "admin")

	rr := env.do(http.MethodDelete, "/users/"+otherAdminID, adminToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if _, ok := env.db.GetUser(otherAdminID); ok {
		t.Fatal("deleted admin still present")
	}
}

func TestDeleteUserRecomputesStoreAggregates(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	raterID, raterToken := env.seedUser(t, "user")
	_, otherToken := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	env.do(http.MethodPost, "/ratings/store/"+storeID, raterToken, `{"rating":1}`)
	env.do(http.MethodPost, "/ratings/store/"+storeID, otherToken, `{"rating":5}`)

	rr := env.do(http.MethodDelete, "/users/"+raterID, adminToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	row, _ := env.db.GetStore(storeID)
	if row.TotalRatings != 1 || row.AverageRating != 5 {
		t.Fatalf("aggregate not recomputed after user deletion: %+v", row)
	}
}

func TestUserRatingsOwnershipOrAdmin(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	userID, userToken := env.seedUser(t, "user")
	_, otherToken := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")
	env.do(http.MethodPost, "/ratings/store/"+storeID, userToken, `{"rating":4}`)

	expectError(t, env.do(http.MethodGet, "/users/"+userID+"/ratings", otherToken, ""), http.StatusForbidden, "not_owner")

	for _, token := range []string{userToken, adminToken} {
		rr := env.do(http.MethodGet, "/users/"+userID+"/ratings", token, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
		}
		var list ratinghttp.ListRatingsResponse
		decodeBody(t, rr, &list)
		if len(list.Ratings) != 1 || list.Ratings[0].StoreID != storeID {
			t.Fatalf("unexpected ratings: %+v", list.Ratings)
		}
	}

	expectError(t, env.do(http.MethodGet, "/users/6f1c2d7e-0000-4000-8000-000000000000/ratings", adminToken, ""), http.StatusNotFound, "not_found")
}

func TestDashboardStats(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	_, userToken := env.seedUser(t, "user")
	ownerID, _ := env.seedUser(t, "store_owner")
	storeID := env.seedStore(t, ownerID)
	env.seedStore(t, "")
	env.do(http.MethodPost, "/ratings/store/"+storeID, userToken, `{"rating":3}`)

	rr := env.do(http.MethodGet, "/users/stats", adminToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var stats dashboardhttp.DashboardResponse
	decodeBody(t, rr, &stats)
	if stats.TotalUsers != 3 || stats.Admins != 1 || stats.StoreOwners != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
	if stats.TotalStores != 2 || stats.StoresWithRatings != 1 || stats.TotalRatings != 1 || stats.AverageRating != 3 {
		t.Fatalf("unexpected store/rating counts: %+v", stats)
	}
	if time.Since(stats.GeneratedAt) > time.Minute {
		t.Fatalf("stale timestamp: %v", stats.GeneratedAt)
	}
}
