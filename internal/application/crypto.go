package application

import (
	"context"
	"encoding/json"

	"currency-gateway/internal/domain"

	"go.uber.org/zap"
)

const (
	detailCryptoCatalog = "crypto currencies unavailable"
	detailCryptoQuote   = "crypto quote unavailable"
	detailCryptoSymbol  = "from_crypto and to_currency must be currency symbols"
)

func (s *GatewayService) ListAvailableCrypto(ctx context.Context) ([]json.RawMessage, error) {
	list, err := s.crypto.Currencies(ctx)
	if err != nil {
		s.log.Warn("crypto_currencies_failed", zap.Error(err))
		return nil, newError(KindUpstreamUnavailable, detailCryptoCatalog, err)
	}
	if list == nil {
		list = []json.RawMessage{}
	}
	return list, nil
}

func (s *GatewayService) GetCryptoQuote(ctx context.Context, fromCrypto, toCurrency string) (domain.CryptoQuote, error) {
	base, err := domain.ParseCryptoSymbol(fromCrypto)
	if err != nil {
		return domain.CryptoQuote{}, newError(KindInvalidInput, detailCryptoSymbol, err)
	}
	quote, err := domain.ParseCryptoSymbol(toCurrency)
	if err != nil {
		return domain.CryptoQuote{}, newError(KindInvalidInput, detailCryptoSymbol, err)
	}
	q, err := s.crypto.SpotPrice(ctx, base, quote)
	if err != nil {
		s.log.Warn("crypto_spot_failed", zap.String("pair", domain.SpotPair(base, quote)), zap.Error(err))
		return domain.CryptoQuote{}, newError(KindQuoteUnavailable, detailCryptoQuote, err)
	}
	return q, nil
}
