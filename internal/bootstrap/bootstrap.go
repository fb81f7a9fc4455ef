package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"currency-gateway/internal/application"
	"currency-gateway/internal/config"
	httpserver "currency-gateway/internal/infrastructure/http"
	"currency-gateway/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// API is the assembled HTTP process.
type API struct {
	Handler http.Handler
	Log     *zap.Logger
}

// BuildAPI wires config into a ready handler. cleanup releases resources in reverse order
// and is safe to call when err != nil.
func BuildAPI(ctx context.Context, cfg config.Config) (api API, cleanup func(), err error) {
	var cleanups []func()
	cleanup = func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}
	defer func() {
		if err != nil {
			cleanup()
		}
	}()

	log := ProvideLogger()
	m := metrics.New()

	up, err := ProvideUpstreams(cfg, m)
	if err != nil {
		return API{}, cleanup, err
	}
	db, closeDB, err := ProvideDB(ctx, log, cfg)
	cleanups = append(cleanups, closeDB)
	if err != nil {
		return API{}, cleanup, err
	}
	idem, closeIdem, err := ProvideIdempotency(cfg)
	cleanups = append(cleanups, closeIdem)
	if err != nil {
		return API{}, cleanup, err
	}

	svc := ProvideGatewayService(up, db, idem, log)
	srv := httpserver.NewServer(svc)
	srv.SetMetrics(m)
	srv.SetReadyCheck(readyCheck(db, idem))

	return API{Handler: httpserver.NewRouter(srv), Log: log}, cleanup, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// readyCheck pings the pool and, when it supports it, the idempotency backend.
func readyCheck(db pinger, idem application.IdempotencyStore) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if p, ok := idem.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return fmt.Errorf("idempotency store: %w", err)
			}
		}
		return nil
	}
}

// Migrate applies pending migrations and exits.
func Migrate(ctx context.Context, cfg config.Config) error {
	cfg.RunMigrations = true
	_, cleanup, err := ProvideDB(ctx, ProvideLogger(), cfg)
	defer cleanup()
	return err
}
