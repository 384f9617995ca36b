package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/evrikaedu/catalog-api/internal/api"
	"github.com/evrikaedu/catalog-api/internal/core/domain"
	"github.com/evrikaedu/catalog-api/internal/core/ports"
	"github.com/evrikaedu/catalog-api/internal/core/service"
	"github.com/evrikaedu/catalog-api/internal/infrastructure/db/postgres"
	"github.com/evrikaedu/catalog-api/internal/infrastructure/db/redis"
	"github.com/evrikaedu/catalog-api/internal/infrastructure/lockout"
	"github.com/evrikaedu/catalog-api/internal/pkg/config"
	"github.com/evrikaedu/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.Logging("catalog-api"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Postgres.MigrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("migrations applied")
	}

	tracker, rdb, err := newAttemptTracker(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}
	log.Info().Str("backend", cfg.Lockout.Backend).Msg("lockout tracker ready")

	authService := service.NewAuthService(postgres.NewAuthRepository(db), tracker, cfg.JWTSecret, cfg.TokenTTL, log)
	cardService := service.NewCardService(postgres.NewCardRepository(db), log)

	if err := seedAdmin(ctx, authService, cfg.Admin, log); err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Log:         log,
		AuthService: authService,
		CardService: cardService,
		DB:          db,
		Redis:       rdb,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newAttemptTracker picks the lockout backend. The redis client is returned so
// the readiness probe and shutdown can use it; it is nil for the memory backend.
func newAttemptTracker(ctx context.Context, cfg *config.Config) (ports.AttemptTracker, *goredis.Client, error) {
	switch cfg.Lockout.Backend {
	case config.LockoutRedis:
		store := redisConfig(cfg.Redis)
		rdb, err := redis.Connect(ctx, store)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return redis.NewAttemptTracker(rdb, store.NamespaceOrDefault(), cfg.Lockout.MaxAttempts, cfg.Lockout.Window), rdb, nil
	default:
		return lockout.NewMemoryTracker(cfg.Lockout.MaxAttempts, cfg.Lockout.Window), nil, nil
	}
}

func redisConfig(c config.RedisConfig) redis.Config {
	return redis.Config{
		URL:       c.URL,
		Addr:      c.Addr,
		Password:  c.Password,
		DB:        c.DB,
		Namespace: c.Namespace,
	}
}

// seedAdmin creates the configured administrator once. An existing account
// with the same email is left untouched.
func seedAdmin(ctx context.Context, auth ports.AuthService, admin config.AdminConfig, log zerolog.Logger) error {
	if admin.Email == "" {
		return nil
	}
	_, err := auth.Register(ctx, admin.Email, admin.Name, admin.Password, domain.RoleAdmin)
	switch {
	case err == nil:
		log.Info().Str("email", admin.Email).Msg("admin account created")
	case errors.Is(err, domain.ErrDuplicateIdentity):
		log.Debug().Str("email", admin.Email).Msg("admin account already exists")
	default:
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
