package httpserver

import (
	"errors"
	"net/http"

	accounterrors "storerating/contexts/identity-access/account-service/domain/errors"
	accounthttp "storerating/contexts/identity-access/account-service/transport/http"
	ratingerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	storeerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	storehttp "storerating/contexts/store-catalog/store-service/transport/http"
	"storerating/internal/shared/identity"
)

// userDetailResponse is the admin view of one user; store owners carry
// their store.
type userDetailResponse struct {
	User  accounthttp.UserDTO `json:"user"`
	Store *storehttp.StoreDTO `json:"store,omitempty"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	resp, err := s.accounts.Handler.ListUsersHandler(r.Context(), accounthttp.ListUsersQuery{
		Name:      queryValue(r, "name"),
		Email:     queryValue(r, "email"),
		Address:   queryValue(r, "address"),
		Role:      queryValue(r, "role"),
		SortBy:    queryValue(r, "sortBy", "sort_by"),
		SortOrder: queryValue(r, "sortOrder", "sort_order"),
	})
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.accounts.Handler.GetUserHandler(r.Context(), userID)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	resp := userDetailResponse{User: user}
	if user.Role == identity.RoleStoreOwner.String() {
		owned, err := s.stores.Handler.OwnerStoreHandler(r.Context(), userID)
		switch {
		case err == nil:
			resp.Store = &owned
		case !errors.Is(err, storeerrors.ErrStoreNotFound):
			s.writeStoreDomainError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	var req accounthttp.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.accounts.Handler.CreateUserHandler(r.Context(), principal.UserID, req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := s.accounts.Handler.DeleteUserHandler(r.Context(), principal.UserID, userID)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUserRatings lets users read their own ratings and admins read
// anyone's. The ownership decision needs no lookup because the path id is
// the owner.
func (s *Server) handleUserRatings(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.gate.RequireOwnerOrAdmin(r.Context(), "user", userID, userID); err != nil {
		s.writeCommonError(w, r, err)
		return
	}
	if principal.UserID != userID {
		if _, err := s.accounts.Handler.GetUserHandler(r.Context(), userID); err != nil {
			s.writeAccountDomainError(w, r, err)
			return
		}
	}
	resp, err := s.ratings.Handler.UserRatingsHandler(r.Context(), userID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	resp, err := s.dashboard.Handler.DashboardHandler(r.Context())
	if err != nil {
		s.writeDashboardDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeDashboardDomainError maps failures surfaced from any of the three
// dashboard sources.
func (s *Server) writeDashboardDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrServiceUnavailable),
		errors.Is(err, storeerrors.ErrServiceUnavailable),
		errors.Is(err, ratingerrors.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	default:
		s.writeCommonError(w, r, err)
	}
}
