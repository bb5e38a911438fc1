package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	account "storerating/contexts/identity-access/account-service"
	"storerating/contexts/identity-access/account-service/application/commands"
	storeapplication "storerating/contexts/store-catalog/store-service/application"
	storeerrors "storerating/contexts/store-catalog/store-service/domain/errors"
	"storerating/internal/platform/db"
	"storerating/internal/platform/httpserver"
	"storerating/internal/shared/identity"
	"storerating/internal/shared/validation"

	"github.com/sethvargo/go-password/password"
)

type demoAccount struct {
	Name    string
	Email   string
	Address string
	Role    identity.Role
}

var demoAccounts = []demoAccount{
	{Name: "System Administrator Account", Email: "admin@example.com", Address: "1 Admin Plaza", Role: identity.RoleAdmin},
	{Name: "John Customer Demo Account", Email: "john@example.com", Address: "22 Shopper Lane", Role: identity.RoleUser},
	{Name: "Tech Store Owner Demo Account", Email: "owner@techstore.com", Address: "5 Market Street", Role: identity.RoleStoreOwner},
}

var demoStore = storeapplication.CreateStoreInput{
	Name:       "Tech Store",
	Email:      "contact@techstore.com",
	Address:    "5 Market Street, Downtown",
	OwnerEmail: "owner@techstore.com",
}

// SeedApp installs the demo dataset. Re-running it resets the demo passwords
// and leaves existing stores alone.
type SeedApp struct {
	accounts account.Module
	stores   storeapplication.Service
	postgres *db.Postgres
	password string
	logger   *slog.Logger
}

func BuildSeeder(ctx context.Context) (*SeedApp, error) {
	rt, err := buildRuntime(ctx, "seed", true)
	if err != nil {
		return nil, err
	}
	if rt.postgres == nil {
		return nil, errors.New("seed requires STORAGE_DRIVER=postgres")
	}

	secret := rt.cfg.SeedPassword
	if secret == "" {
		secret, err = generateDemoPassword()
		if err != nil {
			rt.close()
			return nil, err
		}
	} else if verr := validation.Password("SEED_PASSWORD", secret); verr != nil {
		rt.close()
		return nil, verr
	}
	return newSeedApp(rt.modules, rt.postgres, secret, rt.logger), nil
}

func newSeedApp(modules httpserver.Modules, pg *db.Postgres, secret string, logger *slog.Logger) *SeedApp {
	return &SeedApp{
		accounts: modules.Accounts,
		stores:   modules.Stores.Handler.Service,
		postgres: pg,
		password: secret,
		logger:   logger,
	}
}

// Password is the password every demo account ends up with.
func (s *SeedApp) Password() string {
	return s.password
}

func (s *SeedApp) Run(ctx context.Context) error {
	for _, demo := range demoAccounts {
		if _, _, err := s.accounts.Seeder.Execute(ctx, commands.SeedAccountCommand{
			Name:     demo.Name,
			Email:    demo.Email,
			Password: s.password,
			Address:  demo.Address,
			Role:     demo.Role,
		}); err != nil {
			return fmt.Errorf("seed %s: %w", demo.Email, err)
		}
	}

	created, err := s.stores.CreateStore(ctx, demoStore)
	switch {
	case errors.Is(err, storeerrors.ErrConflict):
		s.logger.Info("demo store already present",
			"event", "bootstrap_seed_store_skipped",
			"module", moduleName,
			"layer", "platform",
			"email", demoStore.Email,
		)
	case errors.Is(err, storeerrors.ErrInvalidOwnerRole):
		return fmt.Errorf("seed store: %s exists without the store_owner role", demoStore.OwnerEmail)
	case err != nil:
		return fmt.Errorf("seed store: %w", err)
	default:
		s.logger.Info("demo store created",
			"event", "bootstrap_seed_store_created",
			"module", moduleName,
			"layer", "platform",
			"store_id", created.ID,
		)
	}
	return nil
}

func (s *SeedApp) Close() error {
	if s.postgres != nil {
		return s.postgres.Close()
	}
	return nil
}

// generateDemoPassword draws until the result satisfies the account password
// policy; the generator does not guarantee an uppercase letter on its own.
func generateDemoPassword() (string, error) {
	gen, err := password.NewGenerator(&password.GeneratorInput{Symbols: validation.SpecialCharacters})
	if err != nil {
		return "", err
	}
	for attempt := 0; attempt < 64; attempt++ {
		candidate, err := gen.Generate(12, 2, 2, false, false)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(candidate) == candidate && validation.Password("password", candidate) == nil {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a policy-compliant demo password")
}
