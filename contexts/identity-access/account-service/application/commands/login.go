package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "storerating/contexts/identity-access/account-service/application"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/validation"
)

// dummyHash is compared against when the email is unknown so both failure
// paths take roughly the same time.
const dummyHash = "$2a$12$C6UzMDM.H6dfI/f/IKcEeO5bq8Zq1yZ9gBr3m9aNQ3Ff6m0m0mZrG"

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenService
	Logger *slog.Logger
}

// Execute returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (AuthResult, error) {
	if err := validation.Collect(
		validation.Email("email", cmd.Email),
		validation.Required("password", cmd.Password),
	); err != nil {
		return AuthResult{}, err
	}

	logger := application.ResolveLogger(u.Logger)
	user, err := u.Users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			_, _ = u.Hasher.Matches(dummyHash, cmd.Password)
			logger.Info("login rejected",
				"event", "account_login_rejected",
				"module", application.Module,
				"layer", "application",
				"reason", "unknown_email",
			)
			return AuthResult{}, domainerrors.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := u.Hasher.Matches(user.PasswordHash, cmd.Password)
	if err != nil {
		return AuthResult{}, err
	}
	if !ok {
		logger.Info("login rejected",
			"event", "account_login_rejected",
			"module", application.Module,
			"layer", "application",
			"reason", "wrong_password",
			"user_id", user.ID,
		)
		return AuthResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := u.Tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}
