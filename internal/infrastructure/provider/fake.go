package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"currency-gateway/internal/application"
	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements both provider ports.
var _ application.RateProvider = (*Fake)(nil)
var _ application.CryptoProvider = (*Fake)(nil)

// Fake serves fixed USD-based rates and a flat crypto price; used with PROVIDER=fake.
type Fake struct {
	usd   map[string]float64
	price decimal.Decimal
}

func NewFake(price float64) *Fake {
	return &Fake{
		usd:   map[string]float64{"USD": 1, "EUR": 0.9, "GBP": 0.8, "JPY": 150},
		price: decimal.NewFromFloat(price),
	}
}

// RateTable derives a table for base by cross-dividing the USD rates.
func (f *Fake) RateTable(_ context.Context, base domain.Currency) (domain.RateTable, error) {
	b, ok := f.usd[string(base)]
	if !ok {
		return domain.RateTable{}, fmt.Errorf("fake: unknown base %s", base)
	}
	rates := make(map[string]float64, len(f.usd))
	for c, r := range f.usd {
		rates[c] = r / b
	}
	return domain.NewRateTable(base, rates, time.Now().UTC()), nil
}

func (f *Fake) Currencies(context.Context) ([]json.RawMessage, error) {
	return []json.RawMessage{
		json.RawMessage(`{"id":"BTC","name":"Bitcoin","min_size":"0.00000001"}`),
		json.RawMessage(`{"id":"ETH","name":"Ethereum","min_size":"0.00000001"}`),
	}, nil
}

func (f *Fake) SpotPrice(_ context.Context, base, quote domain.CryptoSymbol) (domain.CryptoQuote, error) {
	raw, err := json.Marshal(map[string]any{
		"data": map[string]string{"base": string(base), "currency": string(quote), "amount": f.price.String()},
	})
	if err != nil {
		return domain.CryptoQuote{}, err
	}
	return domain.CryptoQuote{Base: base, Currency: quote, Amount: f.price, Raw: raw}, nil
}
