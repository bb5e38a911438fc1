package http

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RatingRequest struct {
	Rating RatingInput `json:"rating"`
}

// RatingInput accepts a JSON number or a numeric string and keeps the raw
// value so non-integral ratings are rejected instead of truncated. Any other
// JSON value decodes without error and is flagged Malformed, leaving the
// field-level rejection to the caller.
type RatingInput struct {
	Value     *float64
	Malformed bool
}

func (in *RatingInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*in = RatingInput{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		in.Value = &number
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			in.Value = &parsed
			return nil
		}
	}
	in.Malformed = true
	return nil
}

type RatingDTO struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StoreID      string    `json:"store_id"`
	Rating       int       `json:"rating"`
	StoreName    string    `json:"store_name,omitempty"`
	StoreAddress string    `json:"store_address,omitempty"`
	UserName     string    `json:"user_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StoreSummaryDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

type SubmitRatingResponse struct {
	Message string          `json:"message"`
	Created bool            `json:"created"`
	Rating  RatingDTO       `json:"rating"`
	Store   StoreSummaryDTO `json:"store"`
}

type RatingResponse struct {
	Rating RatingDTO `json:"rating"`
}

type ListRatingsResponse struct {
	Ratings []RatingDTO `json:"ratings"`
}

type StoreRatingsResponse struct {
	Store   StoreSummaryDTO `json:"store"`
	Ratings []RatingDTO     `json:"ratings"`
}

type DeleteRatingResponse struct {
	Message string          `json:"message"`
	Store   StoreSummaryDTO `json:"store"`
}

type RatingStatsResponse struct {
	TotalRatings  int     `json:"total_ratings"`
	AverageRating float64 `json:"average_rating"`
	UniqueRaters  int     `json:"unique_raters"`
	RatedStores   int     `json:"rated_stores"`
}
