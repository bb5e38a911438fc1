package http

import "time"

type DashboardResponse struct {
	TotalUsers        int       `json:"total_users"`
	Admins            int       `json:"admins"`
	Users             int       `json:"users"`
	StoreOwners       int       `json:"store_owners"`
	TotalStores       int       `json:"total_stores"`
	StoresWithRatings int       `json:"stores_with_ratings"`
	TotalRatings      int       `json:"total_ratings"`
	AverageRating     float64   `json:"average_rating"`
	UniqueRaters      int       `json:"unique_raters"`
	GeneratedAt       time.Time `json:"generated_at"`
}
