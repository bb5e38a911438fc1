package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateStoreRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	OwnerEmail string `json:"owner_email"`
}

type UpdateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type ListStoresQuery struct {
	Name      string
	Email     string
	Address   string
	SortBy    string
	SortOrder string
}

type StoreDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       string    `json:"owner_id,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int       `json:"total_ratings"`
	UserRating    *int      `json:"user_rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StoreResponse struct {
	Store StoreDTO `json:"store"`
}

type ListStoresResponse struct {
	Stores []StoreDTO `json:"stores"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StoreStatsResponse struct {
	TotalStores       int     `json:"total_stores"`
	StoresWithRatings int     `json:"stores_with_ratings"`
	OverallAverage    float64 `json:"overall_average_rating"`
}
