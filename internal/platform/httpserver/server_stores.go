package httpserver

import (
	"errors"
	"net/http"

	ratinghttp "storerating/contexts/store-catalog/rating-ledger/transport/http"
	storeerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	storehttp "storerating/contexts/store-catalog/store-service/transport/http"
	"storerating/internal/shared/identity"
)

// storeDetailResponse is a store with its ratings, newest first.
type storeDetailResponse struct {
	Store   storehttp.StoreDTO     `json:"store"`
	Ratings []ratinghttp.RatingDTO `json:"ratings"`
}

func writeStoreError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, storehttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) writeStoreDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storeerrors.ErrStoreNotFound):
		writeStoreError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, storeerrors.ErrConflict):
		writeStoreError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, storeerrors.ErrOwnerNotFound),
		errors.Is(err, storeerrors.ErrInvalidOwnerRole):
		writeStoreError(w, http.StatusBadRequest, "invalid_operation", err.Error())
	case errors.Is(err, storeerrors.ErrServiceUnavailable):
		writeStoreError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	default:
		s.writeCommonError(w, r, err)
	}
}

// callerRatings returns the caller's own rating per store. Only the user
// role rates stores, so everyone else gets nil.
func (s *Server) callerRatings(r *http.Request, principal identity.Principal) (map[string]int, error) {
	if !principal.Is(identity.RoleUser) {
		return nil, nil
	}
	return s.ratings.Handler.RatingValues(r.Context(), principal.UserID)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	mine, err := s.callerRatings(r, principal)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	resp, err := s.stores.Handler.ListStoresHandler(r.Context(), storehttp.ListStoresQuery{
		Name:      queryValue(r, "name"),
		Email:     queryValue(r, "email"),
		Address:   queryValue(r, "address"),
		SortBy:    queryValue(r, "sortBy", "sort_by"),
		SortOrder: queryValue(r, "sortOrder", "sort_order"),
	}, mine)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	mine, err := s.callerRatings(r, principal)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	item, err := s.stores.Handler.GetStoreHandler(r.Context(), storeID, mine)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	s.writeStoreDetail(w, r, item)
}

func (s *Server) handleOwnerDashboard(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	item, err := s.stores.Handler.OwnerStoreHandler(r.Context(), principal.UserID)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	s.writeStoreDetail(w, r, item)
}

func (s *Server) writeStoreDetail(w http.ResponseWriter, r *http.Request, item storehttp.StoreDTO) {
	ratings, err := s.ratings.Handler.StoreRatingsHandler(r.Context(), item.ID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, storeDetailResponse{Store: item, Ratings: ratings.Ratings})
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	var req storehttp.CreateStoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.stores.Handler.CreateStoreHandler(r.Context(), req)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateStore(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req storehttp.UpdateStoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.stores.Handler.UpdateStoreHandler(r.Context(), storeID, req)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	storeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := s.stores.Handler.DeleteStoreHandler(r.Context(), storeID)
	if err != nil {
		s.writeStoreDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
