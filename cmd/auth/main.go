package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	oauthadapter "github.com/tamara-re/Pinterest-Ranker-Backend/internal/adapter/oauth"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/config"
	httptransport "github.com/tamara-re/Pinterest-Ranker-Backend/internal/http"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/http/handler"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/jwt"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/repository"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/server"
	authsvc "github.com/tamara-re/Pinterest-Ranker-Backend/internal/service/auth"
	"github.com/tamara-re/Pinterest-Ranker-Backend/internal/telemetry"
)

func main() {
	// Optional .env for local development; deployed environments inject vars.
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newUserDirectory,
			newStateStore,
			newProviderClient,
			newSessionCodec,
			authsvc.NewLoginService,
			handler.NewAuthHandler,
			httptransport.NewRouter,
			newHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newUserDirectory(pool *pgxpool.Pool) (repository.UserDirectory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return repository.NewPostgresUserDirectory(ctx, pool)
}

// newStateStore prefers Redis so state survives restarts and is shared across
// replicas; without REDIS_URL a single node falls back to process memory.
func newStateStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (repository.StateStore, error) {
	if cfg.RedisURL == "" {
		logger.Warn("REDIS_URL not set, using in-memory state store")
		return repository.NewMemoryStateStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return repository.NewRedisStateStore(client), nil
}

func newProviderClient(cfg config.Config) oauthadapter.ProviderClient {
	return oauthadapter.NewHTTPProviderClient(cfg)
}

func newSessionCodec(cfg config.Config) *jwt.Codec {
	return jwt.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
}

func newHTTPServer(router *gin.Engine, logger *zap.Logger) *server.HTTPServer {
	return server.NewHTTPServer(router, logger)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
