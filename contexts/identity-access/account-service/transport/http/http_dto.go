package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type ListUsersQuery struct {
	Name      string
	Email     string
	Address   string
	Role      string
	SortBy    string
	SortOrder string
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListItemDTO struct {
	UserDTO
	StoreID     string   `json:"store_id,omitempty"`
	StoreRating *float64 `json:"store_rating,omitempty"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserResponse struct {
	User UserDTO `json:"user"`
}

type VerifyResponse struct {
	Valid bool    `json:"valid"`
	User  UserDTO `json:"user"`
}

type ListUsersResponse struct {
	Users []UserListItemDTO `json:"users"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RoleCountsResponse struct {
	Admin      int `json:"admin"`
	User       int `json:"user"`
	StoreOwner int `json:"store_owner"`
	Total      int `json:"total"`
}
