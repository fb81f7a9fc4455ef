package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrRepo     = errors.New("repo error")
	ErrUpstream = errors.New("upstream error")
)

type fakeRateProvider struct {
	tables map[domain.Currency]map[string]float64
	err    error
	calls  int
}

func (f *fakeRateProvider) RateTable(_ context.Context, base domain.Currency) (domain.RateTable, error) {
	f.calls++
	if f.err != nil {
		return domain.RateTable{}, f.err
	}
	raw, ok := f.tables[base]
	if !ok {
		return domain.RateTable{}, ErrUpstream
	}
	return domain.NewRateTable(base, raw, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), nil
}

type fakeCryptoProvider struct {
	currencies []json.RawMessage
	quote      domain.CryptoQuote
	err        error
	lastPair   string
}

func (f *fakeCryptoProvider) Currencies(context.Context) ([]json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.currencies, nil
}

func (f *fakeCryptoProvider) SpotPrice(_ context.Context, base, quote domain.CryptoSymbol) (domain.CryptoQuote, error) {
	f.lastPair = domain.SpotPair(base, quote)
	if f.err != nil {
		return domain.CryptoQuote{}, f.err
	}
	return f.quote, nil
}

type fakeAssetRepo struct {
	rows map[string]domain.Asset
	err  error
}

func (f *fakeAssetRepo) UpdatePrice(_ context.Context, symbol string, price decimal.Decimal) error {
	if f.err != nil {
		return f.err
	}
	a, ok := f.rows[symbol]
	if !ok {
		return ErrNotFound
	}
	a.Price = price
	f.rows[symbol] = a
	return nil
}

func (f *fakeAssetRepo) Insert(_ context.Context, a domain.Asset) error {
	if f.err != nil {
		return f.err
	}
	if f.rows == nil {
		f.rows = map[string]domain.Asset{}
	}
	if _, ok := f.rows[a.Symbol]; ok {
		return ErrDuplicate
	}
	f.rows[a.Symbol] = a
	return nil
}

type countingUoW struct {
	calls int
}

func (u *countingUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	return fn(ctx)
}

type fakeIdem struct {
	seen     map[string]bool
	released []string
	err      error
}

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

func (f *fakeIdem) Release(_ context.Context, k string) error {
	delete(f.seen, k)
	f.released = append(f.released, k)
	return nil
}

func usdTable() *fakeRateProvider {
	return &fakeRateProvider{tables: map[domain.Currency]map[string]float64{
		"USD": {"EUR": 0.9, "GBP": 0.8},
	}}
}
