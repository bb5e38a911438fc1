package commands

import (
	"context"
	"log/slog"
	"time"

	application "storerating/contexts/identity-access/account-service/application"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/validation"
)

type ChangePasswordCommand struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

type ChangePasswordUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u ChangePasswordUseCase) Execute(ctx context.Context, cmd ChangePasswordCommand) error {
	if err := validation.Collect(
		validation.Required("current_password", cmd.CurrentPassword),
		validation.Password("new_password", cmd.NewPassword),
	); err != nil {
		return err
	}

	user, err := u.Users.GetUser(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	ok, err := u.Hasher.Matches(user.PasswordHash, cmd.CurrentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return domainerrors.ErrInvalidCurrentPassword
	}

	hash, err := u.Hasher.Hash(cmd.NewPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	if err := u.Users.UpdatePassword(ctx, user.ID, hash, now); err != nil {
		return err
	}

	application.ResolveLogger(u.Logger).Info("password changed",
		"event", "account_password_changed",
		"module", application.Module,
		"layer", "application",
		"user_id", user.ID,
	)
	return nil
}
