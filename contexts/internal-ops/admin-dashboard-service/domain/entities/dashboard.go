package entities

import "time"

type Dashboard struct {
	Admins            int
	Users             int
	StoreOwners       int
	TotalStores       int
	StoresWithRatings int
	TotalRatings      int
	AverageRating     float64
	UniqueRaters      int
	GeneratedAt       time.Time
}

func (d Dashboard) TotalUsers() int {
	return d.Admins + d.Users + d.StoreOwners
}
