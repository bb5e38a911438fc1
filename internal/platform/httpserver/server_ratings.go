package httpserver

import (
	"errors"
	"net/http"

	ratingerrors "storerating/contexts/store-catalog/rating-ledger/domain/errors"
	ratinghttp "storerating/contexts/store-catalog/rating-ledger/transport/http"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"
)

func writeRatingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ratinghttp.ErrorResponse{Code: code, Message: message})
}

func (s *Server) writeRatingDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ratingerrors.ErrStoreNotFound),
		errors.Is(err, ratingerrors.ErrRatingNotFound),
		errors.Is(err, ratingerrors.ErrRaterNotFound):
		writeRatingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrInvalidValue):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  validation.Errors{{Field: "rating", Message: err.Error()}},
		})
	case errors.Is(err, ratingerrors.ErrServiceUnavailable):
		writeRatingError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	default:
		s.writeCommonError(w, r, err)
	}
}

// decodeRating reads the body and validates the rating value.
func decodeRating(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req ratinghttp.RatingRequest
	if !decodeJSON(w, r, &req) {
		return 0, false
	}
	if req.Rating.Malformed {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  validation.Errors{{Field: "rating", Message: "rating must be an integer between 1 and 5"}},
		})
		return 0, false
	}
	value, verr := validation.RatingValue("rating", req.Rating.Value)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  validation.Errors{verr},
		})
		return 0, false
	}
	return value, true
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	storeID, ok := pathID(w, r, "storeId")
	if !ok {
		return
	}
	value, ok := decodeRating(w, r)
	if !ok {
		return
	}
	resp, err := s.ratings.Handler.SubmitRatingHandler(r.Context(), principal.UserID, storeID, value)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleMyRating(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	storeID, ok := pathID(w, r, "storeId")
	if !ok {
		return
	}
	resp, err := s.ratings.Handler.MyRatingHandler(r.Context(), principal.UserID, storeID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStoreRatings(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	storeID, ok := pathID(w, r, "storeId")
	if !ok {
		return
	}
	resp, err := s.ratings.Handler.StoreRatingsHandler(r.Context(), storeID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateRating(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	ratingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	value, ok := decodeRating(w, r)
	if !ok {
		return
	}
	resp, err := s.ratings.Handler.UpdateRatingHandler(r.Context(), ratingID, value)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteRating(w http.ResponseWriter, r *http.Request, _ identity.Principal) {
	ratingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := s.ratings.Handler.DeleteRatingHandler(r.Context(), ratingID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyRatings(w http.ResponseWriter, r *http.Request, principal identity.Principal) {
	resp, err := s.ratings.Handler.UserRatingsHandler(r.Context(), principal.UserID)
	if err != nil {
		s.writeRatingDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
