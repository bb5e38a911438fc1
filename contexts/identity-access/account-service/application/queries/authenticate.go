package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "storerating/contexts/identity-access/account-service/application"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/shared/identity"
)

// AuthenticateUseCase resolves a bearer token into the caller's principal.
type AuthenticateUseCase struct {
	Users  ports.UserRepository
	Tokens ports.TokenService
	Logger *slog.Logger
}

// Execute returns ErrTokenMalformed, ErrTokenExpired or ErrUnknownSubject
// when the token cannot identify a live account.
func (u AuthenticateUseCase) Execute(ctx context.Context, token string) (identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return identity.Principal{}, domainerrors.ErrTokenMalformed
	}
	userID, err := u.Tokens.Verify(token)
	if err != nil {
		return identity.Principal{}, err
	}
	user, err := u.Users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			application.ResolveLogger(u.Logger).Info("token subject missing",
				"event", "account_token_subject_missing",
				"module", application.Module,
				"layer", "application",
				"user_id", userID,
			)
			return identity.Principal{}, domainerrors.ErrUnknownSubject
		}
		return identity.Principal{}, err
	}
	return user.Principal(), nil
}
