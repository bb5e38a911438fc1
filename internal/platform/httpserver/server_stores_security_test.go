package httpserver

import (
	"net/http"
	"strings"
	"testing"

	storehttp "storerating/contexts/store-catalog/store-service/transport/http"
)

func TestStoreAdminRoutesRejectOtherRoles(t *testing.T) {
	env := newTestServer(t)
	_, userToken := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	expectError(t, env.do(http.MethodPost, "/stores", userToken, `{"name":"Shop","email":"s@example.com","address":"Road"}`), http.StatusForbidden, "forbidden_role")
	expectError(t, env.do(http.MethodPut, "/stores/"+storeID, userToken, `{"name":"Shop","email":"s@example.com","address":"Road"}`), http.StatusForbidden, "forbidden_role")
	expectError(t, env.do(http.MethodDelete, "/stores/"+storeID, userToken, ""), http.StatusForbidden, "forbidden_role")
	expectError(t, env.do(http.MethodGet, "/stores", "", ""), http.StatusUnauthorized, "unauthenticated")
}

func TestCreateStoreResolvesOwnerByEmail(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	ownerID, _ := env.seedUser(t, "store_owner")
	userID, _ := env.seedUser(t, "user")

	body := `{"name":"Book Nook","email":"books@example.com","address":"2 Side Street","owner_email":"` + ownerID + `@example.com"}`
	rr := env.do(http.MethodPost, "/stores", adminToken, body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created storehttp.StoreResponse
	decodeBody(t, rr, &created)
	if created.Store.OwnerID != ownerID || created.Store.TotalRatings != 0 {
		t.Fatalf("unexpected store: %+v", created.Store)
	}

	expectError(t, env.do(http.MethodPost, "/stores", adminToken, body), http.StatusConflict, "conflict")

	notOwner := `{"name":"Other","email":"other@example.com","address":"3 Road","owner_email":"` + userID + `@example.com"}`
	expectError(t, env.do(http.MethodPost, "/stores", adminToken, notOwner), http.StatusBadRequest, "invalid_operation")

	missing := `{"name":"Other","email":"other@example.com","address":"3 Road","owner_email":"ghost@example.com"}`
	expectError(t, env.do(http.MethodPost, "/stores", adminToken, missing), http.StatusBadRequest, "invalid_operation")

	expectError(t, env.do(http.MethodPost, "/stores", adminToken, `{"name":"","email":"bad","address":""}`), http.StatusBadRequest, "validation_error")
}

func TestStoreListingCarriesCallerRating(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	_, userToken := env.seedUser(t, "user")
	rated := env.seedStore(t, "")
	unrated := env.seedStore(t, "")
	env.do(http.MethodPost, "/ratings/store/"+rated, userToken, `{"rating":4}`)

	rr := env.do(http.MethodGet, "/stores?sortBy=average_rating&sortOrder=DESC", userToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var list storehttp.ListStoresResponse
	decodeBody(t, rr, &list)
	if len(list.Stores) != 2 || list.Stores[0].ID != rated {
		t.Fatalf("unexpected order: %+v", list.Stores)
	}
	if list.Stores[0].UserRating == nil || *list.Stores[0].UserRating != 4 {
		t.Fatalf("expected user_rating 4, got %+v", list.Stores[0].UserRating)
	}
	if list.Stores[1].ID != unrated || list.Stores[1].UserRating != nil {
		t.Fatalf("unrated store must not carry user_rating: %+v", list.Stores[1])
	}

	rr = env.do(http.MethodGet, "/stores", adminToken, "")
	if strings.Contains(rr.Body.String(), "user_rating") {
		t.Fatalf("admin listing must not carry user_rating: %s", rr.Body.String())
	}
	var adminList storehttp.ListStoresResponse
	decodeBody(t, rr, &adminList)
	if len(adminList.Stores) != 2 {
		t.Fatalf("expected both stores for admin, got %+v", adminList.Stores)
	}
	for _, item := range adminList.Stores {
		if item.UserRating != nil {
			t.Fatalf("admin listing must not carry user_rating: %+v", item)
		}
	}
}

func TestStoreDetailIncludesRatings(t *testing.T) {
	env := newTestServer(t)
	_, userToken := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")
	env.do(http.MethodPost, "/ratings/store/"+storeID, userToken, `{"rating":2}`)

	rr := env.do(http.MethodGet, "/stores/"+storeID, userToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var detail storeDetailResponse
	decodeBody(t, rr, &detail)
	if detail.Store.AverageRating != 2 || len(detail.Ratings) != 1 || detail.Store.UserRating == nil {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	expectError(t, env.do(http.MethodGet, "/stores/6f1c2d7e-0000-4000-8000-000000000000", userToken, ""), http.StatusNotFound, "not_found")
}

func TestOwnerDashboard(t *testing.T) {
	env := newTestServer(t)
	ownerID, ownerToken := env.seedUser(t, "store_owner")
	_, userToken := env.seedUser(t, "user")
	_, ownerWithoutStoreToken := env.seedUser(t, "store_owner")
	storeID := env.seedStore(t, ownerID)
	env.do(http.MethodPost, "/ratings/store/"+storeID, userToken, `{"rating":5}`)

	expectError(t, env.do(http.MethodGet, "/stores/dashboard/my-store", userToken, ""), http.StatusForbidden, "forbidden_role")
	expectError(t, env.do(http.MethodGet, "/stores/dashboard/my-store", ownerWithoutStoreToken, ""), http.StatusNotFound, "not_found")

	rr := env.do(http.MethodGet, "/api/stores/dashboard/my-store", ownerToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var detail storeDetailResponse
	decodeBody(t, rr, &detail)
	if detail.Store.ID != storeID || detail.Store.TotalRatings != 1 || len(detail.Ratings) != 1 {
		t.Fatalf("unexpected dashboard: %+v", detail)
	}
	if detail.Ratings[0].UserEmail == "" {
		t.Fatal("owner dashboard must show who rated")
	}
}

func TestDeleteStoreCascadesRatings(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	_, userToken := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")
	env.do(http.MethodPost, "/ratings/store/"+storeID, userToken, `{"rating":5}`)

	if rr := env.do(http.MethodDelete, "/stores/"+storeID, adminToken, ""); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr := env.do(http.MethodGet, "/ratings/my-ratings", userToken, "")
	if rr.Code != http.StatusOK || rr.Body.String() != "{\"ratings\":[]}\n" {
		t.Fatalf("expected no ratings left, got %d %s", rr.Code, rr.Body.String())
	}
}
