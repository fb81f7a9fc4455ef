package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"currency-gateway/internal/application"
	"currency-gateway/internal/domain"
	"currency-gateway/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const (
	coinbaseCurrenciesPath = "/v2/currencies"
	coinbaseSpotPathFmt    = "/v2/prices/%s/spot"
)

// CoinbaseProvider reads the currency catalog and spot prices from the Coinbase v2 API.
type CoinbaseProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.CryptoProvider = (*CoinbaseProvider)(nil)

type cbCurrenciesResp struct {
	Data []json.RawMessage `json:"data"`
}

type cbSpotResp struct {
	Data struct {
		Base     string `json:"base"`
		Currency string `json:"currency"`
		Amount   string `json:"amount"`
	} `json:"data"`
}

func (p *CoinbaseProvider) Currencies(ctx context.Context) ([]json.RawMessage, error) {
	u, err := p.endpoint(coinbaseCurrenciesPath)
	if err != nil {
		return nil, err
	}
	var body cbCurrenciesResp
	if err := p.Client.GetJSON(ctx, u, &body); err != nil {
		return nil, fmt.Errorf("coinbase: currencies: %w", err)
	}
	return body.Data, nil
}

// SpotPrice returns the quote with the provider body kept verbatim in Raw.
func (p *CoinbaseProvider) SpotPrice(ctx context.Context, base, quote domain.CryptoSymbol) (domain.CryptoQuote, error) {
	pair := domain.SpotPair(base, quote)
	u, err := p.endpoint(fmt.Sprintf(coinbaseSpotPathFmt, url.PathEscape(pair)))
	if err != nil {
		return domain.CryptoQuote{}, err
	}
	var raw json.RawMessage
	if err := p.Client.GetJSON(ctx, u, &raw); err != nil {
		return domain.CryptoQuote{}, fmt.Errorf("coinbase: spot %s: %w", pair, err)
	}
	var body cbSpotResp
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.CryptoQuote{}, fmt.Errorf("coinbase: spot %s: decode: %w", pair, err)
	}
	amount, err := decimal.NewFromString(body.Data.Amount)
	if err != nil {
		return domain.CryptoQuote{}, fmt.Errorf("coinbase: spot %s: amount %q: %w", pair, body.Data.Amount, err)
	}
	q := domain.CryptoQuote{Base: base, Currency: quote, Amount: amount, Raw: raw}
	if body.Data.Base != "" {
		q.Base = domain.CryptoSymbol(strings.ToUpper(body.Data.Base))
	}
	if body.Data.Currency != "" {
		q.Currency = domain.CryptoSymbol(strings.ToUpper(body.Data.Currency))
	}
	return q, nil
}

func (p *CoinbaseProvider) endpoint(path string) (string, error) {
	if p.BaseURL == "" || p.Client == nil {
		return "", errors.New("coinbase: missing configuration")
	}
	return strings.TrimSuffix(p.BaseURL, "/") + path, nil
}
