package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"currency-gateway/internal/application"
	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
)

var _ application.RateProvider = (*fakeRateProvider)(nil)
var _ application.CryptoProvider = (*fakeCryptoProvider)(nil)
var _ application.AssetRepo = (*fakeAssetRepo)(nil)

var errUpstream = errors.New("status 404")

type fakeRateProvider struct {
	tables map[domain.Currency]map[string]float64
}

func (f *fakeRateProvider) RateTable(_ context.Context, base domain.Currency) (domain.RateTable, error) {
	raw, ok := f.tables[base]
	if !ok {
		return domain.RateTable{}, errUpstream
	}
	return domain.NewRateTable(base, raw, time.Now()), nil
}

type fakeCryptoProvider struct {
	fail bool
}

func (f *fakeCryptoProvider) Currencies(context.Context) ([]json.RawMessage, error) {
	if f.fail {
		return nil, errUpstream
	}
	return []json.RawMessage{
		json.RawMessage(`{"id":"BTC","name":"Bitcoin","min_size":"0.00000001"}`),
	}, nil
}

func (f *fakeCryptoProvider) SpotPrice(_ context.Context, base, quote domain.CryptoSymbol) (domain.CryptoQuote, error) {
	if f.fail || base != "BTC" {
		return domain.CryptoQuote{}, errUpstream
	}
	raw := json.RawMessage(`{"data":{"base":"BTC","currency":"` + string(quote) + `","amount":"50000.5"}}`)
	return domain.CryptoQuote{Base: base, Currency: quote, Amount: decimal.RequireFromString("50000.5"), Raw: raw}, nil
}

type fakeAssetRepo struct {
	rows map[string]domain.Asset
}

func (f *fakeAssetRepo) UpdatePrice(_ context.Context, symbol string, price decimal.Decimal) error {
	a, ok := f.rows[symbol]
	if !ok {
		return application.ErrNotFound
	}
	a.Price = price
	f.rows[symbol] = a
	return nil
}

func (f *fakeAssetRepo) Insert(_ context.Context, a domain.Asset) error {
	if _, ok := f.rows[a.Symbol]; ok {
		return application.ErrDuplicate
	}
	f.rows[a.Symbol] = a
	return nil
}

type memIdem struct{ seen map[string]bool }

func (m *memIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if m.seen[k] {
		return false, nil
	}
	m.seen[k] = true
	return true, nil
}

func (m *memIdem) Release(_ context.Context, k string) error {
	delete(m.seen, k)
	return nil
}

func newInMemoryService() (*application.GatewayService, *fakeAssetRepo, *fakeCryptoProvider) {
	rp := &fakeRateProvider{tables: map[domain.Currency]map[string]float64{
		"USD": {"EUR": 0.9, "GBP": 0.8},
	}}
	cp := &fakeCryptoProvider{}
	repo := &fakeAssetRepo{rows: map[string]domain.Asset{
		"BTC": {Symbol: "BTC", Price: decimal.RequireFromString("100"), ProductType: "crypto", Name: "Bitcoin"},
	}}
	svc := application.NewGatewayService(rp, cp, repo,
		application.WithIdempotency(&memIdem{seen: map[string]bool{}}),
	)
	return svc, repo, cp
}
