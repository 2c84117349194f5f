package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store *Store
	redis *redis.Client
	http  *http.Server
}

// Store is an opened question store plus the function that releases it.
type Store struct {
	Repo  *repository.QuestionRepository
	close func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore connects the backend selected by cfg.Store.Driver.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		sqlite, err := repository.OpenSQLite(ctx, cfg.Store.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info().Str("driver", config.DriverSQLite).Msg("question store ready")
		return &Store{
			Repo: repository.NewQuestionRepository(sqlite),
			close: func() {
				if err := sqlite.Close(); err != nil {
					logger.Error().Err(err).Msg("sqlite close error")
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Store.AutoMigrate {
			db := stdlib.OpenDBFromPool(pool)
			err := migrations.Up(ctx, db)
			_ = db.Close()
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info().Msg("migrations applied")
		}
		logger.Info().Str("driver", config.DriverPostgres).Str("host", cfg.Postgres.Host).Msg("question store ready")
		return &Store{
			Repo:  repository.NewQuestionRepository(repository.NewPostgresStore(pool)),
			close: pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// NewRedis returns nil when no Redis address is configured.
func NewRedis(cfg *config.App) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}

// NewService builds the question service over store, caching category labels
// in Redis when a client is given.
func NewService(cfg *config.App, store *Store, redisClient *redis.Client, logger zerolog.Logger) *question.Service {
	var cache question.CategoryCache
	if redisClient != nil {
		cache = question.NewCache(redisClient, cfg.Trivia.CategoryCacheTTL)
	}
	return question.NewService(store.Repo, cache, question.ServiceOptions{
		PageSize: cfg.Trivia.PageSize,
	}, logger)
}

// New bootstraps logger, store, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient := NewRedis(cfg)
	if redisClient == nil {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	metrics.Register()

	svc := NewService(cfg, store, redisClient, logger)
	handler := question.NewHTTPHandler(svc, logger)

	checks := map[string]server.Check{"store": svc.Ping}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	router := server.NewRouter(cfg, logger, handler, checks)

	return &Application{
		cfg:    cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
		http:   server.NewHTTPServer(cfg, router),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.Close()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

// Close releases the store and Redis connections.
func (a *Application) Close() {
	a.store.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

// Handler exposes the router, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.http.Handler
}
