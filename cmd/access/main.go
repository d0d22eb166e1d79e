package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/audit"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/config"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/gate"
	httptransport "github.com/PayAidPayments/PayAid-V3-sub021/internal/http"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/http/handler"
	httpmiddleware "github.com/PayAidPayments/PayAid-V3-sub021/internal/http/middleware"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/license"
	apimiddleware "github.com/PayAidPayments/PayAid-V3-sub021/internal/middleware"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/repository"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/server"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/telemetry"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/token"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newRedisClient,
			newTenantRepository,
			newLicenseRepository,
			newLicenseStore,
			newVerifier,
			newAuditRecorder,
			newGate,
			newRateLimiter,
			newAuthMiddleware,
			handler.NewAccessHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
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

func newRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

func newTenantRepository(pool *pgxpool.Pool) repository.TenantRepository {
	return repository.NewPostgresTenantRepo(pool)
}

func newLicenseRepository(pool *pgxpool.Pool) repository.LicenseRepository {
	return repository.NewPostgresLicenseRepo(pool)
}

func newLicenseStore(cfg config.Config, tenants repository.TenantRepository, licenses repository.LicenseRepository, rdb *redis.Client) license.Store {
	store := license.NewDBStore(tenants, licenses)
	if rdb == nil {
		return store
	}
	return license.NewCachedStore(store, rdb, cfg.LicenseCacheTTL)
}

func newVerifier(cfg config.Config) *token.Verifier {
	return token.NewVerifier([]byte(cfg.TokenSecret), cfg.TokenIssuer, nil)
}

func newAuditRecorder(logger *zap.Logger) audit.Recorder {
	return audit.NewZapRecorder(logger)
}

func newGate(store license.Store, recorder audit.Recorder) *gate.Gate {
	return gate.New(store, recorder)
}

func newRateLimiter(cfg config.Config, rdb *redis.Client) *apimiddleware.RateLimiter {
	return apimiddleware.NewRateLimiter(rdb, cfg.RateLimitRPM)
}

func newAuthMiddleware(verifier *token.Verifier) *httpmiddleware.Auth {
	return &httpmiddleware.Auth{Verifier: verifier}
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
