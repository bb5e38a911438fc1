package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	account "storerating/contexts/identity-access/account-service"
	accountmemory "storerating/contexts/identity-access/account-service/adapters/memory"
	accountpostgres "storerating/contexts/identity-access/account-service/adapters/postgres"
	"storerating/contexts/identity-access/account-service/adapters/security"
	authorization "storerating/contexts/identity-access/authorization-service"
	admindashboardservice "storerating/contexts/internal-ops/admin-dashboard-service"
	ratings "storerating/contexts/store-catalog/rating-ledger"
	ratingmemory "storerating/contexts/store-catalog/rating-ledger/adapters/memory"
	ratingpostgres "storerating/contexts/store-catalog/rating-ledger/adapters/postgres"
	store "storerating/contexts/store-catalog/store-service"
	storememory "storerating/contexts/store-catalog/store-service/adapters/memory"
	storepostgres "storerating/contexts/store-catalog/store-service/adapters/postgres"
	"storerating/internal/app/bridges"
	"storerating/internal/platform/config"
	"storerating/internal/platform/db"
	"storerating/internal/platform/httpserver"
	"storerating/internal/platform/memdb"
	"storerating/internal/platform/obs"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const (
	moduleName      = "internal/app/bootstrap"
	shutdownTimeout = 10 * time.Second
)

type APIApp struct {
	server         *httpserver.Server
	postgres       *db.Postgres
	shutdownTracer obs.ShutdownFunc
	logger         *slog.Logger
}

type WorkerApp struct {
	postgres *db.Postgres
	ledger   ratings.Module
	logger   *slog.Logger
}

// runtime is the storage-bound module graph shared by every process.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	postgres *db.Postgres
	modules  httpserver.Modules
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	rt, err := buildRuntime(ctx, "api", true)
	if err != nil {
		return nil, err
	}

	shutdownTracer, err := obs.InitTracer(ctx, obs.TracerConfig{
		ServiceName: rt.cfg.ServiceName,
		Endpoint:    rt.cfg.OTelEndpoint,
		Enabled:     rt.cfg.OTelEnabled,
	})
	if err != nil {
		rt.close()
		return nil, err
	}

	var health func(context.Context) error
	if rt.postgres != nil {
		health = rt.postgres.Ping
	}
	server := httpserver.New(rt.modules, httpserver.Config{
		Addr:        normalizeAddr(rt.cfg.HTTPPort),
		ClientURL:   rt.cfg.ClientURL,
		HealthCheck: health,
	}, rt.logger)

	return &APIApp{
		server:         server,
		postgres:       rt.postgres,
		shutdownTracer: shutdownTracer,
		logger:         rt.logger,
	}, nil
}

// BuildWorker wires the aggregate reconciler. It needs shared storage, so
// the memory driver is rejected.
func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	rt, err := buildRuntime(ctx, "worker", false)
	if err != nil {
		return nil, err
	}
	if rt.postgres == nil {
		return nil, errors.New("worker requires STORAGE_DRIVER=postgres")
	}
	return &WorkerApp{
		postgres: rt.postgres,
		ledger:   rt.modules.Ratings,
		logger:   rt.logger,
	}, nil
}

func buildRuntime(ctx context.Context, process string, migrate bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg).With("service", cfg.ServiceName, "process", process)

	rt := &runtime{cfg: cfg, logger: logger}
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart",
			"event", "bootstrap_memory_storage",
			"module", moduleName,
			"layer", "platform",
		)
		rt.modules = memoryModules(cfg, memdb.New(), logger)
		return rt, nil
	case config.StorageDriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	pg, err := db.Connect(cfg.PostgresDSN, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectTimeout:  cfg.DBAcquireTimeout,
	})
	if err != nil {
		return nil, err
	}
	if migrate && cfg.AutoMigrate {
		if err := db.Migrate(ctx, pg.DB); err != nil {
			_ = pg.Close()
			return nil, err
		}
		logger.Info("schema migrations applied",
			"event", "bootstrap_migrations_applied",
			"module", moduleName,
			"layer", "platform",
		)
	}
	rt.postgres = pg
	rt.modules = postgresModules(cfg, pg, logger)
	return rt, nil
}

func postgresModules(cfg config.Config, pg *db.Postgres, logger *slog.Logger) httpserver.Modules {
	timeout := cfg.DBAcquireTimeout
	accountRepo := accountpostgres.NewRepository(pg.DB, logger, timeout)
	storeRepo := storepostgres.NewRepository(pg.DB, logger, timeout)
	ratingRepo := ratingpostgres.NewRepository(pg.DB, logger, timeout)

	accounts := account.NewModule(account.Dependencies{
		Users:       accountRepo,
		Hasher:      security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		Clock:       accountpostgres.SystemClock{},
		IDGenerator: accountpostgres.UUIDGenerator{},
		Logger:      logger,
	})
	authz := authorization.NewModule(authorization.Dependencies{Logger: logger})
	stores := store.NewModule(store.Dependencies{
		Repository:  storeRepo,
		Owners:      bridges.OwnerDirectory{Users: accounts.Handler.GetUser},
		Clock:       storepostgres.SystemClock{},
		IDGenerator: storepostgres.UUIDGenerator{},
		Logger:      logger,
	})
	ledger := ratings.NewModule(ratings.Dependencies{
		Repository:        ratingRepo,
		Reconciler:        ratingRepo,
		Gate:              authz.Gate,
		Clock:             ratingpostgres.SystemClock{},
		IDGenerator:       ratingpostgres.UUIDGenerator{},
		ReconcileInterval: cfg.ReconcileInterval,
		Logger:            logger,
	})
	return assemble(accounts, authz, stores, ledger, logger)
}

func memoryModules(cfg config.Config, mem *memdb.DB, logger *slog.Logger) httpserver.Modules {
	accountStore := accountmemory.NewStore(mem)
	storeStore := storememory.NewStore(mem)
	ratingStore := ratingmemory.NewStore(mem)

	accounts := account.NewModule(account.Dependencies{
		Users:       accountStore,
		Hasher:      security.NewBcryptHasher(cfg.BcryptCost),
		Tokens:      security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL),
		Clock:       accountStore,
		IDGenerator: accountStore,
		Logger:      logger,
	})
	authz := authorization.NewModule(authorization.Dependencies{Logger: logger})
	stores := store.NewModule(store.Dependencies{
		Repository:  storeStore,
		Owners:      bridges.OwnerDirectory{Users: accounts.Handler.GetUser},
		Clock:       storeStore,
		IDGenerator: storeStore,
		Logger:      logger,
	})
	ledger := ratings.NewModule(ratings.Dependencies{
		Repository:        ratingStore,
		Reconciler:        ratingStore,
		Gate:              authz.Gate,
		Clock:             ratingStore,
		IDGenerator:       ratingStore,
		ReconcileInterval: cfg.ReconcileInterval,
		Logger:            logger,
	})
	return assemble(accounts, authz, stores, ledger, logger)
}

func assemble(
	accounts account.Module,
	authz authorization.Module,
	stores store.Module,
	ledger ratings.Module,
	logger *slog.Logger,
) httpserver.Modules {
	dashboard := admindashboardservice.NewModule(admindashboardservice.Dependencies{
		Users:   bridges.UserCounter{Counts: accounts.Handler.CountByRole},
		Stores:  bridges.StoreCounter{Stores: stores.Handler.Service},
		Ratings: bridges.RatingCounter{Stats: ledger.Handler.Stats},
		Logger:  logger,
	})
	return httpserver.Modules{
		Accounts:      accounts,
		Authorization: authz,
		Stores:        stores,
		Ratings:       ledger,
		Dashboard:     dashboard,
	}
}

func (rt *runtime) close() {
	if rt.postgres != nil {
		_ = rt.postgres.Close()
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", moduleName,
		"layer", "platform",
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(a.server.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func (a *APIApp) Close() error {
	var errs []error
	if a.shutdownTracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		errs = append(errs, a.shutdownTracer(ctx))
		cancel()
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", moduleName,
		"layer", "platform",
		"reconcile_interval", w.ledger.Reconciler.Interval.String(),
	)
	return w.ledger.Reconciler.Run(ctx)
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
