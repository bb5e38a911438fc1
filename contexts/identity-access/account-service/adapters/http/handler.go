package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	"storerating/contexts/identity-access/account-service/application/commands"
	"storerating/contexts/identity-access/account-service/application/queries"
	"storerating/contexts/identity-access/account-service/domain/entities"
	httptransport "storerating/contexts/identity-access/account-service/transport/http"
	"storerating/internal/shared/identity"
)

type Handler struct {
	Register       commands.RegisterUseCase
	Login          commands.LoginUseCase
	ChangePassword commands.ChangePasswordUseCase
	CreateUser     commands.CreateUserUseCase
	DeleteUser     commands.DeleteUserUseCase
	Authenticate   queries.AuthenticateUseCase
	GetUser        queries.GetUserUseCase
	ListUsers      queries.ListUsersUseCase
	CountByRole    queries.CountByRoleUseCase
	Logger         *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.AuthResponse, error) {
	result, err := h.Register.Execute(ctx, commands.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{Token: result.Token, User: MapUser(result.User)}, nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.AuthResponse, error) {
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{Token: result.Token, User: MapUser(result.User)}, nil
}

// AuthenticateToken resolves a raw bearer token for the HTTP middleware.
func (h Handler) AuthenticateToken(ctx context.Context, token string) (identity.Principal, error) {
	return h.Authenticate.Execute(ctx, token)
}

func (h Handler) ProfileHandler(ctx context.Context, userID string) (httptransport.UserResponse, error) {
	user, err := h.GetUser.Execute(ctx, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: MapUser(user)}, nil
}

func (h Handler) VerifyHandler(ctx context.Context, userID string) (httptransport.VerifyResponse, error) {
	user, err := h.GetUser.Execute(ctx, userID)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	return httptransport.VerifyResponse{Valid: true, User: MapUser(user)}, nil
}

func (h Handler) ChangePasswordHandler(
	ctx context.Context,
	userID string,
	req httptransport.ChangePasswordRequest,
) (httptransport.MessageResponse, error) {
	err := h.ChangePassword.Execute(ctx, commands.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "password updated"}, nil
}

func (h Handler) CreateUserHandler(
	ctx context.Context,
	actorID string,
	req httptransport.CreateUserRequest,
) (httptransport.UserResponse, error) {
	user, err := h.CreateUser.Execute(ctx, commands.CreateUserCommand{
		ActorID:  actorID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return httptransport.UserResponse{User: MapUser(user)}, nil
}

func (h Handler) GetUserHandler(ctx context.Context, userID string) (httptransport.UserDTO, error) {
	user, err := h.GetUser.Execute(ctx, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return MapUser(user), nil
}

func (h Handler) ListUsersHandler(ctx context.Context, query httptransport.ListUsersQuery) (httptransport.ListUsersResponse, error) {
	items, err := h.ListUsers.Execute(ctx, queries.ListUsersQuery{
		Name:      query.Name,
		Email:     query.Email,
		Address:   query.Address,
		Role:      query.Role,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		return httptransport.ListUsersResponse{}, err
	}
	resp := httptransport.ListUsersResponse{Users: make([]httptransport.UserListItemDTO, 0, len(items))}
	for _, item := range items {
		resp.Users = append(resp.Users, httptransport.UserListItemDTO{
			UserDTO:     MapUser(item.User),
			StoreID:     item.StoreID,
			StoreRating: item.StoreRating,
		})
	}
	return resp, nil
}

func (h Handler) DeleteUserHandler(ctx context.Context, actorID string, userID string) (httptransport.MessageResponse, error) {
	if err := h.DeleteUser.Execute(ctx, commands.DeleteUserCommand{
		ActorID: strings.TrimSpace(actorID),
		UserID:  userID,
	}); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: "user deleted"}, nil
}

func (h Handler) CountByRoleHandler(ctx context.Context) (httptransport.RoleCountsResponse, error) {
	counts, err := h.CountByRole.Execute(ctx)
	if err != nil {
		return httptransport.RoleCountsResponse{}, err
	}
	resp := httptransport.RoleCountsResponse{
		Admin:      counts[identity.RoleAdmin],
		User:       counts[identity.RoleUser],
		StoreOwner: counts[identity.RoleStoreOwner],
	}
	resp.Total = resp.Admin + resp.User + resp.StoreOwner
	return resp, nil
}

func MapUser(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
