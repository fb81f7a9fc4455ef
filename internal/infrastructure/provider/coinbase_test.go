package provider_test

import (
	"testing"

	"currency-gateway/internal/domain"
	"currency-gateway/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

func TestCurrencies(t *testing.T) {
	var urls []string
	body := `{"data":[{"id":"BTC","name":"Bitcoin","min_size":"0.00000001"},{"id":"ETH","name":"Ethereum"}]}`
	p := &provider.CoinbaseProvider{BaseURL: "https://api.coinbase.com/", Client: stubClient(body, 200, &urls)}

	list, err := p.Currencies(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"https://api.coinbase.com/v2/currencies"}, urls)
	require.Len(t, list, 2)
	require.JSONEq(t, `{"id":"BTC","name":"Bitcoin","min_size":"0.00000001"}`, string(list[0]))
}

func TestCurrencies_UpstreamError(t *testing.T) {
	p := &provider.CoinbaseProvider{BaseURL: "https://api.coinbase.com", Client: stubClient(`oops`, 502, nil)}
	_, err := p.Currencies(ctx)
	require.Error(t, err)
}

func TestSpotPrice(t *testing.T) {
	var urls []string
	body := `{"data":{"base":"BTC","currency":"USD","amount":"67012.55"}}`
	p := &provider.CoinbaseProvider{BaseURL: "https://api.coinbase.com", Client: stubClient(body, 200, &urls)}

	q, err := p.SpotPrice(ctx, "BTC", "USD")
	require.NoError(t, err)
	require.Equal(t, []string{"https://api.coinbase.com/v2/prices/BTC-USD/spot"}, urls)
	require.Equal(t, domain.CryptoSymbol("BTC"), q.Base)
	require.Equal(t, domain.CryptoSymbol("USD"), q.Currency)
	require.Equal(t, "67012.55", q.Amount.String())
	require.JSONEq(t, body, string(q.Raw))
}

func TestSpotPrice_BadAmount(t *testing.T) {
	body := `{"data":{"base":"BTC","currency":"USD","amount":"n/a"}}`
	p := &provider.CoinbaseProvider{BaseURL: "https://api.coinbase.com", Client: stubClient(body, 200, nil)}

	_, err := p.SpotPrice(ctx, "BTC", "USD")
	require.Error(t, err)
}

func TestSpotPrice_NotFound(t *testing.T) {
	body := `{"errors":[{"id":"not_found","message":"Invalid currency"}]}`
	p := &provider.CoinbaseProvider{BaseURL: "https://api.coinbase.com", Client: stubClient(body, 404, nil)}

	_, err := p.SpotPrice(ctx, "NOPE", "USD")
	require.Error(t, err)
}
