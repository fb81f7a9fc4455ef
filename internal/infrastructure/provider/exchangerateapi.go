package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"currency-gateway/internal/application"
	"currency-gateway/internal/domain"
	"currency-gateway/internal/infrastructure/httpx"
)

// ExchangeRateAPIProvider reads full rate tables from exchangerate-api.com v4.
type ExchangeRateAPIProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateProvider = (*ExchangeRateAPIProvider)(nil)

type xrLatestResp struct {
	Base            string             `json:"base"`
	Date            string             `json:"date"`
	TimeLastUpdated int64              `json:"time_last_updated"`
	Rates           map[string]float64 `json:"rates"`
}

// RateTable issues GET {BaseURL}{BASE}.
func (p *ExchangeRateAPIProvider) RateTable(ctx context.Context, base domain.Currency) (domain.RateTable, error) {
	if p.BaseURL == "" || p.Client == nil {
		return domain.RateTable{}, errors.New("exchangerateapi: missing configuration")
	}
	u := p.BaseURL
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	u += string(base)

	var body xrLatestResp
	if err := p.Client.GetJSON(ctx, u, &body); err != nil {
		return domain.RateTable{}, fmt.Errorf("exchangerateapi: %w", err)
	}
	if len(body.Rates) == 0 {
		return domain.RateTable{}, errors.New("exchangerateapi: empty rate table")
	}

	updatedAt := time.Now().UTC()
	if body.TimeLastUpdated > 0 {
		updatedAt = time.Unix(body.TimeLastUpdated, 0).UTC()
	}
	return domain.NewRateTable(base, body.Rates, updatedAt), nil
}
