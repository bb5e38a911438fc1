package commands

import (
	"context"
	"log/slog"
	"strings"

	application "storerating/contexts/identity-access/account-service/application"
	"storerating/contexts/identity-access/account-service/domain/entities"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"
)

type CreateUserCommand struct {
	ActorID  string
	Name     string
	Email    string
	Password string
	Address  string
	// Role is the wire string; empty means user.
	Role string
}

// CreateUserUseCase is the admin path for creating accounts of any role.
type CreateUserUseCase struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (entities.User, error) {
	role := identity.RoleUser
	var roleErr *validation.Error
	if strings.TrimSpace(cmd.Role) != "" {
		parsed, err := identity.ParseRole(cmd.Role)
		if err != nil {
			roleErr = &validation.Error{Field: "role", Message: "role must be one of admin, user, store_owner"}
		}
		role = parsed
	}

	input := accountInput{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Address:  cmd.Address,
		Role:     role,
	}
	if err := validateAccount(input); err != nil || roleErr != nil {
		return entities.User{}, mergeValidation(err, roleErr)
	}

	writer := accountWriter{Users: u.Users, Hasher: u.Hasher, Clock: u.Clock, IDGenerator: u.IDGenerator}
	user, err := writer.create(ctx, input)
	if err != nil {
		return entities.User{}, err
	}

	application.ResolveLogger(u.Logger).Info("user created by admin",
		"event", "account_user_created",
		"module", application.Module,
		"layer", "application",
		"actor_id", cmd.ActorID,
		"user_id", user.ID,
		"role", user.Role.String(),
	)
	return user, nil
}

func mergeValidation(err error, extra *validation.Error) error {
	list, _ := err.(validation.Errors)
	if extra != nil {
		list = append(list, extra)
	}
	if len(list) == 0 {
		return err
	}
	return list
}
