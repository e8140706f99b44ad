// @title                       Inventory API
// @version                     1.0
// @description                 Multi-tenant inventory management: registration, login and owner-scoped product CRUD.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"

	"github.com/inventory-app/inventory-api/internal/api"
	"github.com/inventory-app/inventory-api/internal/core/ports"
	"github.com/inventory-app/inventory-api/internal/core/service"
	"github.com/inventory-app/inventory-api/internal/infrastructure/config"
	"github.com/inventory-app/inventory-api/internal/infrastructure/db/mongo"
	"github.com/inventory-app/inventory-api/internal/infrastructure/db/postgres"
	"github.com/inventory-app/inventory-api/internal/infrastructure/db/redis"
	"github.com/inventory-app/inventory-api/internal/infrastructure/filestore"
	"github.com/inventory-app/inventory-api/internal/infrastructure/http/handlers"
	"github.com/inventory-app/inventory-api/internal/infrastructure/queue"
	"github.com/inventory-app/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// storage is the repository pair selected by configuration.
type storage struct {
	users     ports.AuthRepository
	products  ports.ProductRepository
	readiness handlers.Dependency
	close     func(context.Context)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inventory-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inventory-api",
	})
	log.Info().Object("config", cfg).Msg("configuration loaded")

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	readiness := []handlers.Dependency{store.readiness}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb)
		readiness = append(readiness, handlers.Dependency{Name: "redis", Pinger: redis.Pinger{Client: rdb}})
	} else {
		log.Warn().Msg("REDIS_ADDR empty, idempotent product creation disabled")
	}

	images, err := filestore.NewImageStore(cfg.Uploads.Dir, cfg.Uploads.MaxBytes)
	if err != nil {
		return err
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	janitor := queue.NewDispatcher(cfg.Uploads.CleanupWorkers, images, logger.Component("image-cleanup"))
	janitor.Start(workerCtx)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, service.WithLeeway(cfg.Auth.Leeway))
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService, err := service.NewAuthService(store.users, hasher, tokens, logger.Component("auth"))
	if err != nil {
		return err
	}
	productService := service.NewProductService(store.products, images, janitor, idem, logger.Component("products"))

	e := api.NewRouter(api.Dependencies{
		AuthService:    authService,
		ProductService: productService,
		Tokens:         tokens,
		Users:          store.users,
		UploadDir:      images.Dir(),
		CORSOrigins:    cfg.CORSOrigins,
		Readiness:      readiness,
		Logger:         logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("postgres storage ready")
		return &storage{
			users:     postgres.NewUserRepository(pool),
			products:  postgres.NewProductRepository(pool),
			readiness: handlers.Dependency{Name: "postgres", Pinger: postgres.Pinger{Pool: pool}},
			close:     func(context.Context) { pool.Close() },
		}, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		users := mongo.NewUserRepository(db)
		products := mongo.NewProductRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("user indexes: %w", err)
		}
		if err := products.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("product indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo storage ready")
		return &storage{
			users:     users,
			products:  products,
			readiness: handlers.Dependency{Name: "mongodb", Pinger: mongo.Pinger{Client: client}},
			close:     func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}
}
