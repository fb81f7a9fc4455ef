package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"currency-gateway/internal/application"
	"currency-gateway/internal/config"
	"currency-gateway/internal/infrastructure/httpx"
	"currency-gateway/internal/infrastructure/logx"
	"currency-gateway/internal/infrastructure/metrics"
	"currency-gateway/internal/infrastructure/pg"
	"currency-gateway/internal/infrastructure/provider"
	redisstore "currency-gateway/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required")

const (
	providerHTTP = "http"
	providerFake = "fake"

	backendRedis = "redis"
	backendNone  = "none"

	fakeSpotPrice = 50000.0
)

func ProvideLogger() *zap.Logger { return logx.L() }

// ProvideDB opens the shared pool and, when enabled, applies pending migrations.
func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("pg connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func()) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }
}

// ProvideIdempotency returns the redis-backed store for IDEMPOTENCY_BACKEND=redis and a no-op otherwise.
func ProvideIdempotency(cfg config.Config) (application.IdempotencyStore, func(), error) {
	switch cfg.IdempotencyBackend {
	case backendRedis:
		client, cleanup := ProvideRedisClient(cfg)
		return redisstore.New(client, cfg.RedisTTL), cleanup, nil
	case backendNone, "":
		return application.NoopIdempotency{}, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown IDEMPOTENCY_BACKEND %q", cfg.IdempotencyBackend)
	}
}

func upstreamClient(name string, cfg config.Config, m *metrics.Metrics) *httpx.Client {
	return &httpx.Client{
		HTTP:       &http.Client{Timeout: cfg.UpstreamTimeout},
		Name:       name,
		MaxRetries: cfg.UpstreamRetries,
		Metrics:    m,
	}
}

// Upstreams bundles the two price sources the gateway proxies.
type Upstreams struct {
	Rates  application.RateProvider
	Crypto application.CryptoProvider
}

func ProvideUpstreams(cfg config.Config, m *metrics.Metrics) (Upstreams, error) {
	switch cfg.Provider {
	case providerHTTP, "":
		return Upstreams{
			Rates: &provider.ExchangeRateAPIProvider{
				BaseURL: cfg.RateAPIBase,
				Client:  upstreamClient("exchangerate_api", cfg, m),
			},
			Crypto: &provider.CoinbaseProvider{
				BaseURL: cfg.CryptoAPIBase,
				Client:  upstreamClient("coinbase", cfg, m),
			},
		}, nil
	case providerFake:
		f := provider.NewFake(fakeSpotPrice)
		return Upstreams{Rates: f, Crypto: f}, nil
	default:
		return Upstreams{}, fmt.Errorf("unknown PROVIDER %q", cfg.Provider)
	}
}

func ProvideGatewayService(up Upstreams, db *pg.DB, idem application.IdempotencyStore, log *zap.Logger) *application.GatewayService {
	return application.NewGatewayService(up.Rates, up.Crypto, pg.NewAssetRepo(db),
		application.WithUnitOfWork(pg.NewUnitOfWork(db)),
		application.WithIdempotency(idem),
		application.WithLogger(log),
	)
}
