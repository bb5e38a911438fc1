package httpserver

import (
	"errors"
	"net/http"

	accounterrors "storerating/contexts/identity-access/account-service/domain/errors"
	accounthttp "storerating/contexts/identity-access/account-service/transport/http"
	"storerating/internal/shared/identity"
)

func writeAccountError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) writeAccountDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeAccountError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, accounterrors.ErrEmailTaken):
		writeAccountError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, accounterrors.ErrInvalidCredentials):
		writeAccountError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, accounterrors.ErrTokenMalformed):
		writeAccountError(w, http.StatusUnauthorized, "token_malformed", err.Error())
	case errors.Is(err, accounterrors.ErrTokenExpired):
		writeAccountError(w, http.StatusUnauthorized, "token_expired", err.Error())
	case errors.Is(err, accounterrors.ErrUnknownSubject):
		writeAccountError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, accounterrors.ErrSelfDeletion),
		errors.Is(err, accounterrors.ErrInvalidCurrentPassword):
		writeAccountError(w, http.StatusBadRequest, "invalid_operation", err.Error())
	case errors.Is(err, accounterrors.ErrServiceUnavailable):
		writeAccountError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	default:
		s.writeCommonError(w, r, err)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	resp, err := s.accounts.Handler.ProfileHandler(r.Context(), principal.UserID)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	resp, err := s.accounts.Handler.VerifyHandler(r.Context(), principal.UserID)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	var req accounthttp.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.accounts.Handler.ChangePasswordHandler(r.Context(), principal.UserID, req)
	if err != nil {
		s.writeAccountDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
