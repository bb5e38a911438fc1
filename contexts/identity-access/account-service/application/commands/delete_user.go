package commands

import (
	"context"
	"log/slog"
	"strings"

	application "storerating/contexts/identity-access/account-service/application"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
)

type DeleteUserCommand struct {
	ActorID string
	UserID  string
}

type DeleteUserUseCase struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

// Execute refuses self-deletion before looking anything up.
func (u DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == strings.TrimSpace(cmd.ActorID) {
		return domainerrors.ErrSelfDeletion
	}
	if err := u.Users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	application.ResolveLogger(u.Logger).Info("user deleted",
		"event", "account_user_deleted",
		"module", application.Module,
		"layer", "application",
		"actor_id", cmd.ActorID,
		"user_id", userID,
	)
	return nil
}
