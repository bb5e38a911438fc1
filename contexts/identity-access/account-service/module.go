package account

import (
	"log/slog"
	"time"

	httpadapter "storerating/contexts/identity-access/account-service/adapters/http"
	"storerating/contexts/identity-access/account-service/adapters/memory"
	"storerating/contexts/identity-access/account-service/adapters/security"
	"storerating/contexts/identity-access/account-service/application/commands"
	"storerating/contexts/identity-access/account-service/application/queries"
	"storerating/contexts/identity-access/account-service/ports"
	"storerating/internal/platform/memdb"

	"golang.org/x/crypto/bcrypt"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Seeder  commands.SeedAccountUseCase
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenService
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Register: commands.RegisterUseCase{
			Users:       deps.Users,
			Hasher:      deps.Hasher,
			Tokens:      deps.Tokens,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Login: commands.LoginUseCase{
			Users:  deps.Users,
			Hasher: deps.Hasher,
			Tokens: deps.Tokens,
			Logger: deps.Logger,
		},
		ChangePassword: commands.ChangePasswordUseCase{
			Users:  deps.Users,
			Hasher: deps.Hasher,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		CreateUser: commands.CreateUserUseCase{
			Users:       deps.Users,
			Hasher:      deps.Hasher,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		DeleteUser: commands.DeleteUserUseCase{
			Users:  deps.Users,
			Logger: deps.Logger,
		},
		Authenticate: queries.AuthenticateUseCase{
			Users:  deps.Users,
			Tokens: deps.Tokens,
			Logger: deps.Logger,
		},
		GetUser:     queries.GetUserUseCase{Users: deps.Users},
		ListUsers:   queries.ListUsersUseCase{Users: deps.Users},
		CountByRole: queries.CountByRoleUseCase{Users: deps.Users},
		Logger:      deps.Logger,
	}
	return Module{
		Handler: handler,
		Seeder: commands.SeedAccountUseCase{
			Users:       deps.Users,
			Hasher:      deps.Hasher,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module over db. Hashing
// uses the minimum bcrypt cost so tests stay fast.
func NewInMemoryModule(db *memdb.DB, tokenSecret string, logger *slog.Logger) Module {
	store := memory.NewStore(db)
	module := NewModule(Dependencies{
		Users:       store,
		Hasher:      security.NewBcryptHasher(bcrypt.MinCost),
		Tokens:      security.NewJWTService(tokenSecret, 24*time.Hour),
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
