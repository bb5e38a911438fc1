package httpserver

import (
	"net/http"
	"sync"
	"testing"

	ratinghttp "storerating/contexts/store-catalog/rating-ledger/transport/http"
)

func TestSubmitRatingCreatesThenReplaces(t *testing.T) {
	env := newTestServer(t)
	_, token := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	rr := env.do(http.MethodPost, "/ratings/store/"+storeID, token, `{"rating":3}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var first ratinghttp.SubmitRatingResponse
	decodeBody(t, rr, &first)

	rr = env.do(http.MethodPost, "/api/ratings/store/"+storeID, token, `{"rating":5}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on replace, got %d body=%s", rr.Code, rr.Body.String())
	}
	var second ratinghttp.SubmitRatingResponse
	decodeBody(t, rr, &second)
	if second.Created || second.Rating.ID != first.Rating.ID || second.Store.AverageRating != 5 || second.Store.TotalRatings != 1 {
		t.Fatalf("unexpected replace response: %+v", second)
	}

	rr = env.do(http.MethodGet, "/ratings/store/"+storeID+"/my-rating", token, "")
	var mine ratinghttp.RatingResponse
	decodeBody(t, rr, &mine)
	if mine.Rating.Rating != 5 {
		t.Fatalf("expected my rating 5, got %+v", mine.Rating)
	}
}

func TestSubmitRatingValidation(t *testing.T) {
	env := newTestServer(t)
	_, token := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	for _, body := range []string{
		`{"rating":0}`, `{"rating":6}`, `{"rating":2.5}`, `{}`, `{"rating":null}`,
		`{"rating":"abc"}`, `{"rating":"2.5"}`, `{"rating":true}`, `{"rating":[4]}`,
	} {
		rr := env.do(http.MethodPost, "/ratings/store/"+storeID, token, body)
		expectError(t, rr, http.StatusBadRequest, "validation_error")
		var resp errorResponse
		decodeBody(t, rr, &resp)
		if len(resp.Fields) != 1 || resp.Fields[0].Field != "rating" {
			t.Fatalf("expected rating field error for %s, got %+v", body, resp.Fields)
		}
	}
	expectError(t, env.do(http.MethodPost, "/ratings/store/"+storeID, token, `{"rating":`), http.StatusBadRequest, "invalid_json")
	expectError(t, env.do(http.MethodPost, "/ratings/store/6f1c2d7e-0000-4000-8000-000000000000", token, `{"rating":4}`), http.StatusNotFound, "not_found")
	expectError(t, env.do(http.MethodPost, "/ratings/store/abc", token, `{"rating":4}`), http.StatusBadRequest, "validation_error")
}

func TestOnlyUsersRate(t *testing.T) {
	env := newTestServer(t)
	_, adminToken := env.seedUser(t, "admin")
	_, ownerToken := env.seedUser(t, "store_owner")
	storeID := env.seedStore(t, "")

	for _, token := range []string{adminToken, ownerToken} {
		expectError(t, env.do(http.MethodPost, "/ratings/store/"+storeID, token, `{"rating":4}`), http.StatusForbidden, "forbidden_role")
		expectError(t, env.do(http.MethodGet, "/ratings/my-ratings", token, ""), http.StatusForbidden, "forbidden_role")
	}
	if rr := env.do(http.MethodGet, "/ratings/store/"+storeID, ownerToken, ""); rr.Code != http.StatusOK {
		t.Fatalf("any authenticated caller reads store ratings, got %d", rr.Code)
	}
}

func TestRatingMutationsRequireOwnership(t *testing.T) {
	env := newTestServer(t)
	_, ownerToken := env.seedUser(t, "user")
	_, otherToken := env.seedUser(t, "user")
	_, adminToken := env.seedUser(t, "admin")
	storeID := env.seedStore(t, "")

	rr := env.do(http.MethodPost, "/ratings/store/"+storeID, ownerToken, `{"rating":3}`)
	var created ratinghttp.SubmitRatingResponse
	decodeBody(t, rr, &created)
	path := "/ratings/" + created.Rating.ID

	expectError(t, env.do(http.MethodPut, path, otherToken, `{"rating":1}`), http.StatusForbidden, "not_owner")
	expectError(t, env.do(http.MethodDelete, path, otherToken, ""), http.StatusForbidden, "not_owner")
	expectError(t, env.do(http.MethodPut, path, adminToken, `{"rating":1}`), http.StatusForbidden, "forbidden_role")
	expectError(t, env.do(http.MethodPut, "/ratings/6f1c2d7e-0000-4000-8000-000000000000", otherToken, `{"rating":1}`), http.StatusNotFound, "not_found")

	rr = env.do(http.MethodPut, path, ownerToken, `{"rating":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = env.do(http.MethodDelete, path, ownerToken, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var deleted ratinghttp.DeleteRatingResponse
	decodeBody(t, rr, &deleted)
	if deleted.Store.TotalRatings != 0 || deleted.Store.AverageRating != 0 {
		t.Fatalf("expected empty aggregate, got %+v", deleted.Store)
	}
}

func TestConcurrentSubmissionsOverHTTP(t *testing.T) {
	env := newTestServer(t)
	_, token := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(value int) {
			defer wg.Done()
			rr := env.do(http.MethodPost, "/ratings/store/"+storeID, token, `{"rating":`+string(rune('1'+value%5))+`}`)
			if rr.Code != http.StatusOK && rr.Code != http.StatusCreated {
				t.Errorf("unexpected status %d body=%s", rr.Code, rr.Body.String())
			}
		}(i)
	}
	wg.Wait()

	rr := env.do(http.MethodGet, "/ratings/store/"+storeID, token, "")
	var result ratinghttp.StoreRatingsResponse
	decodeBody(t, rr, &result)
	if len(result.Ratings) != 1 || result.Store.TotalRatings != 1 {
		t.Fatalf("expected one rating row, got %+v", result)
	}
	if result.Store.AverageRating != float64(result.Ratings[0].Rating) {
		t.Fatalf("aggregate out of sync: %+v", result)
	}
}

func TestSubmitRatingAcceptsNumericString(t *testing.T) {
	env := newTestServer(t)
	_, token := env.seedUser(t, "user")
	storeID := env.seedStore(t, "")

	rr := env.do(http.MethodPost, "/ratings/store/"+storeID, token, `{"rating":" 5 "}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	row, _ := env.db.GetStore(storeID)
	if row.TotalRatings != 1 || row.AverageRating != 5 {
		t.Fatalf("unexpected aggregate: %+v", row)
	}
}
