package application

import (
	"context"

	"go.uber.org/zap"
)

// GatewayService converts currencies through the rate providers and applies
// asset updates to the orderbook store.
type GatewayService struct {
	rates  RateProvider
	crypto CryptoProvider
	assets AssetRepo
	uow    UnitOfWork
	idem   IdempotencyStore
	log    *zap.Logger
}

type Option func(*GatewayService)

func WithUnitOfWork(u UnitOfWork) Option        { return func(s *GatewayService) { s.uow = u } }
func WithIdempotency(i IdempotencyStore) Option { return func(s *GatewayService) { s.idem = i } }
func WithLogger(l *zap.Logger) Option           { return func(s *GatewayService) { s.log = l } }

func NewGatewayService(rates RateProvider, crypto CryptoProvider, assets AssetRepo, opts ...Option) *GatewayService {
	s := &GatewayService{
		rates:  rates,
		crypto: crypto,
		assets: assets,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.uow == nil {
		s.uow = NoopUoW{}
	}
	if s.idem == nil {
		s.idem = NoopIdempotency{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// reserve claims an idempotency key for op. A nil or empty key skips the check.
func (s *GatewayService) reserve(ctx context.Context, op string, key *string) (string, error) {
	if key == nil || *key == "" {
		return "", nil
	}
	k := op + ":" + *key
	ok, err := s.idem.TryReserve(ctx, k)
	if err != nil {
		return "", newError(KindStoreUnavailable, "idempotency store unavailable", err)
	}
	if !ok {
		return "", ErrConflict
	}
	return k, nil
}

func (s *GatewayService) release(ctx context.Context, k string) {
	if k == "" {
		return
	}
	if err := s.idem.Release(ctx, k); err != nil {
		s.log.Warn("idempotency_release_failed", zap.String("key", k), zap.Error(err))
	}
}
