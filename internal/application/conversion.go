package application

import (
	"context"
	"errors"

	"currency-gateway/internal/domain"

	"go.uber.org/zap"
)

const (
	detailFromUnsupported = "From currency not supported"
	detailToUnsupported   = "To currency not supported"
	detailAmountNumeric   = "amount must be numeric"
	detailAmountRange     = "amount must be a non-negative finite number"
)

// rateTable fetches the table for from. Every provider failure is reported as
// an unsupported from-currency; the cause stays wrapped for logs.
func (s *GatewayService) rateTable(ctx context.Context, from string) (domain.RateTable, error) {
	base, err := domain.ParseCurrency(from)
	if err != nil {
		return domain.RateTable{}, newError(KindInvalidInput, detailFromUnsupported, err)
	}
	tbl, err := s.rates.RateTable(ctx, base)
	if err != nil {
		s.log.Warn("rate_table_failed", zap.String("base", string(base)), zap.Error(err))
		return domain.RateTable{}, newError(KindUpstreamUnavailable, detailFromUnsupported, err)
	}
	return tbl, nil
}

func (s *GatewayService) GetExchangeRate(ctx context.Context, from, to string) (domain.ConversionResult, error) {
	target, err := domain.ParseCurrency(to)
	if err != nil {
		return domain.ConversionResult{}, newError(KindInvalidInput, detailToUnsupported, err)
	}
	tbl, err := s.rateTable(ctx, from)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	rate, ok := tbl.Rate(target)
	if !ok {
		return domain.ConversionResult{}, newError(KindUnsupportedTarget, detailToUnsupported, nil)
	}
	return domain.ConversionResult{From: tbl.Base, To: target, Rate: rate}, nil
}

// ConvertAmount validates amount before calling the provider.
func (s *GatewayService) ConvertAmount(ctx context.Context, from, to, amount string) (domain.ConversionResult, error) {
	v, err := domain.ParseAmount(amount)
	if err != nil {
		detail := detailAmountRange
		if errors.Is(err, domain.ErrNotNumeric) {
			detail = detailAmountNumeric
		}
		return domain.ConversionResult{}, newError(KindInvalidInput, detail, err)
	}
	res, err := s.GetExchangeRate(ctx, from, to)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	return res.WithAmount(v), nil
}

func (s *GatewayService) ListAvailableCurrencies(ctx context.Context, from string) ([]domain.Currency, error) {
	tbl, err := s.rateTable(ctx, from)
	if err != nil {
		return nil, err
	}
	return tbl.Codes(), nil
}
