package commands

import (
	"context"
	"log/slog"

	application "storerating/contexts/identity-access/account-service/application"
	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
)

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// AuthResult is returned by every flow that hands out a token.
type AuthResult struct {
	User  entities.User
	Token string
}

// RegisterUseCase creates a self-service account. The role is always user.
type RegisterUseCase struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenService
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (AuthResult, error) {
	input := accountInput{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Address:  cmd.Address,
		Role:     identity.RoleUser,
	}
	if err := validateAccount(input); err != nil {
		return AuthResult{}, err
	}

	writer := accountWriter{Users: u.Users, Hasher: u.Hasher, Clock: u.Clock, IDGenerator: u.IDGenerator}
	user, err := writer.create(ctx, input)
	if err != nil {
		return AuthResult{}, err
	}
	token, err := u.Tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	application.ResolveLogger(u.Logger).Info("user registered",
		"event", "account_user_registered",
		"module", application.Module,
		"layer", "application",
		"user_id", user.ID,
	)
	return AuthResult{User: user, Token: token}, nil
}
