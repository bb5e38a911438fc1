package entities

import (
	"time"

	"storerating/internal/shared/identity"
)

// User is an account. Role is fixed at creation.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         identity.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Principal() identity.Principal {
	return identity.Principal{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// UserListing is a user row as the admin list shows it. Store owners carry
// the id and current average rating of the store they own, if any.
type UserListing struct {
	User
	StoreID     string
	StoreRating *float64
}
