package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"storerating/contexts/identity-access/account-service/adapters/memory"
	"storerating/contexts/identity-access/account-service/adapters/security"
	domainerrors "storerating/contexts/identity-access/account-service/domain/errors"
	"storerating/internal/platform/memdb"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"

	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	db     *memdb.DB
	store  *memory.Store
	hasher security.BcryptHasher
	tokens *security.JWTService
}

func newFixture() fixture {
	db := memdb.New()
	return fixture{
		db:     db,
		store:  memory.NewStore(db),
		hasher: security.NewBcryptHasher(bcrypt.MinCost),
		tokens: security.NewJWTService("test-secret", time.Hour),
	}
}

func (f fixture) register() RegisterUseCase {
	return RegisterUseCase{Users: f.store, Hasher: f.hasher, Tokens: f.tokens, Clock: f.store, IDGenerator: f.store}
}

func (f fixture) login() LoginUseCase {
	return LoginUseCase{Users: f.store, Hasher: f.hasher, Tokens: f.tokens}
}

const (
	validName     = "Alexandra Catherine Wood"
	validPassword = "Secret#123"
)

func TestRegisterIssuesTokenForNewUser(t *testing.T) {
	f := newFixture()
	result, err := f.register().Execute(context.Background(), RegisterCommand{
		Name:     validName,
		Email:    "  Alex@Example.com ",
		Password: validPassword,
		Address:  "12 Long Road",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Role != identity.RoleUser {
		t.Fatalf("expected role user, got %s", result.User.Role)
	}
	if result.User.Email != "alex@example.com" {
		t.Fatalf("expected normalized email, got %q", result.User.Email)
	}
	if result.User.PasswordHash == validPassword {
		t.Fatal("password stored in clear")
	}
	subject, err := f.tokens.Verify(result.Token)
	if err != nil || subject != result.User.ID {
		t.Fatalf("token does not resolve to user: %q %v", subject, err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	cmd := RegisterCommand{Name: validName, Email: "dup@example.com", Password: validPassword}
	if _, err := f.register().Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first register: %v", err)
	}
	cmd.Email = "DUP@example.com"
	if _, err := f.register().Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestRegisterCollectsValidationErrors(t *testing.T) {
	f := newFixture()
	_, err := f.register().Execute(context.Background(), RegisterCommand{
		Name:     "Short",
		Email:    "nope",
		Password: "weak",
	})
	var list validation.Errors
	if !errors.As(err, &list) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(list), list)
	}
}

func TestLoginSameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newFixture()
	if _, err := f.register().Execute(context.Background(), RegisterCommand{
		Name: validName, Email: "login@example.com", Password: validPassword,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, unknown := f.login().Execute(context.Background(), LoginCommand{Email: "ghost@example.com", Password: validPassword})
	_, wrong := f.login().Execute(context.Background(), LoginCommand{Email: "login@example.com", Password: "Wrong#123"})
	if !errors.Is(unknown, domainerrors.ErrInvalidCredentials) || !errors.Is(wrong, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for both, got %v / %v", unknown, wrong)
	}
	if unknown.Error() != wrong.Error() {
		t.Fatalf("messages differ: %q vs %q", unknown.Error(), wrong.Error())
	}

	result, err := f.login().Execute(context.Background(), LoginCommand{Email: "LOGIN@example.com", Password: validPassword})
	if err != nil || result.Token == "" {
		t.Fatalf("expected login success, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture()
	registered, err := f.register().Execute(context.Background(), RegisterCommand{
		Name: validName, Email: "change@example.com", Password: validPassword,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	uc := ChangePasswordUseCase{Users: f.store, Hasher: f.hasher, Clock: f.store}

	err = uc.Execute(context.Background(), ChangePasswordCommand{
		UserID: registered.User.ID, CurrentPassword: "Wrong#123", NewPassword: "Fresh#4567",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCurrentPassword) {
		t.Fatalf("expected invalid current password, got %v", err)
	}
	if err := uc.Execute(context.Background(), ChangePasswordCommand{
		UserID: registered.User.ID, CurrentPassword: validPassword, NewPassword: "Fresh#4567",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := f.login().Execute(context.Background(), LoginCommand{Email: "change@example.com", Password: "Fresh#4567"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestCreateUserRoles(t *testing.T) {
	f := newFixture()
	uc := CreateUserUseCase{Users: f.store, Hasher: f.hasher, Clock: f.store, IDGenerator: f.store}

	owner, err := uc.Execute(context.Background(), CreateUserCommand{
		Name: validName, Email: "owner@example.com", Password: validPassword, Role: "store_owner",
	})
	if err != nil || owner.Role != identity.RoleStoreOwner {
		t.Fatalf("expected store owner, got %v %v", owner.Role, err)
	}
	plain, err := uc.Execute(context.Background(), CreateUserCommand{
		Name: validName, Email: "plain@example.com", Password: validPassword,
	})
	if err != nil || plain.Role != identity.RoleUser {
		t.Fatalf("expected default role user, got %v %v", plain.Role, err)
	}
	_, err = uc.Execute(context.Background(), CreateUserCommand{
		Name: validName, Email: "bad@example.com", Password: validPassword, Role: "superuser",
	})
	var list validation.Errors
	if !errors.As(err, &list) || list[0].Field != "role" {
		t.Fatalf("expected role validation error, got %v", err)
	}
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	f := newFixture()
	uc := DeleteUserUseCase{Users: f.store}
	if err := uc.Execute(context.Background(), DeleteUserCommand{ActorID: "a-1", UserID: "a-1"}); !errors.Is(err, domainerrors.ErrSelfDeletion) {
		t.Fatalf("expected self deletion error, got %v", err)
	}
	if err := uc.Execute(context.Background(), DeleteUserCommand{ActorID: "a-1", UserID: "missing"}); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSeedAccountCreatesThenResetsPassword(t *testing.T) {
	f := newFixture()
	uc := SeedAccountUseCase{Users: f.store, Hasher: f.hasher, Clock: f.store, IDGenerator: f.store}
	cmd := SeedAccountCommand{
		Name:     "System Administrator Account",
		Email:    "admin@example.com",
		Password: validPassword,
		Address:  "1 Admin Street",
		Role:     identity.RoleAdmin,
	}

	first, created, err := uc.Execute(context.Background(), cmd)
	if err != nil || !created {
		t.Fatalf("expected account created, got created=%v err=%v", created, err)
	}

	cmd.Password = "Rotated#456"
	second, created, err := uc.Execute(context.Background(), cmd)
	if err != nil || created {
		t.Fatalf("expected password reset, got created=%v err=%v", created, err)
	}
	if second.ID != first.ID || second.Role != identity.RoleAdmin {
		t.Fatalf("expected same admin account, got %+v", second)
	}

	if _, err := f.login().Execute(context.Background(), LoginCommand{Email: cmd.Email, Password: validPassword}); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, err := f.login().Execute(context.Background(), LoginCommand{Email: cmd.Email, Password: "Rotated#456"}); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}

func TestSeedAccountValidates(t *testing.T) {
	f := newFixture()
	uc := SeedAccountUseCase{Users: f.store, Hasher: f.hasher, Clock: f.store, IDGenerator: f.store}
	_, _, err := uc.Execute(context.Background(), SeedAccountCommand{
		Name: validName, Email: "weak@example.com", Password: "weak", Role: identity.RoleUser,
	})
	var list validation.Errors
	if !errors.As(err, &list) {
		t.Fatalf("expected validation errors, got %v", err)
	}
}
