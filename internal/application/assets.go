package application

import (
	"context"
	"errors"

	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	opUpdatePrice = "update_asset_price"
	opInsertAsset = "insert_asset"

	detailSymbolInvalid  = "symbol must be a non-empty string of at most 32 characters"
	fieldNewPrice        = "new_price"
	fieldPrice           = "price"
	detailFieldMissing   = "productType and name must be non-empty"
	detailAssetNotFound  = "An error occurred, make sure symbol exists"
	detailStoreDown      = "asset store unavailable"
	detailAssetDuplicate = "asset already exists"
	detailInsertFailed   = "could not insert asset"
)

type PriceUpdate struct {
	Symbol   string
	NewPrice decimal.Decimal
}

func (s *GatewayService) UpdateAssetPrice(ctx context.Context, symbol, newPrice string, idemKey *string) (PriceUpdate, error) {
	sym, err := domain.ParseSymbol(symbol)
	if err != nil {
		return PriceUpdate{}, newError(KindInvalidInput, detailSymbolInvalid, err)
	}
	price, err := parsePrice(newPrice, fieldNewPrice)
	if err != nil {
		return PriceUpdate{}, err
	}
	key, err := s.reserve(ctx, opUpdatePrice, idemKey)
	if err != nil {
		return PriceUpdate{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		return s.assets.UpdatePrice(ctx, sym, price)
	})
	if err != nil {
		s.release(ctx, key)
		s.log.Warn("asset_price_update_failed", zap.String("symbol", sym), zap.Error(err))
		if errors.Is(err, ErrNotFound) {
			return PriceUpdate{}, newError(KindAssetNotFound, detailAssetNotFound, err)
		}
		return PriceUpdate{}, newError(KindStoreUnavailable, detailStoreDown, err)
	}
	return PriceUpdate{Symbol: sym, NewPrice: price}, nil
}

func (s *GatewayService) InsertAsset(ctx context.Context, symbol, price, productType, name string, idemKey *string) (domain.Asset, error) {
	sym, err := domain.ParseSymbol(symbol)
	if err != nil {
		return domain.Asset{}, newError(KindInvalidInput, detailSymbolInvalid, err)
	}
	p, err := parsePrice(price, fieldPrice)
	if err != nil {
		return domain.Asset{}, err
	}
	if productType == "" || name == "" {
		return domain.Asset{}, newError(KindInvalidInput, detailFieldMissing, nil)
	}
	key, err := s.reserve(ctx, opInsertAsset, idemKey)
	if err != nil {
		return domain.Asset{}, err
	}

	a := domain.Asset{Symbol: sym, Price: p, ProductType: productType, Name: name}
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		return s.assets.Insert(ctx, a)
	})
	if err != nil {
		s.release(ctx, key)
		s.log.Warn("asset_insert_failed", zap.String("symbol", sym), zap.Error(err))
		if errors.Is(err, ErrDuplicate) {
			return domain.Asset{}, newError(KindDuplicateAsset, detailAssetDuplicate, err)
		}
		return domain.Asset{}, newError(KindInsertFailed, detailInsertFailed, err)
	}
	return a, nil
}

func parsePrice(s, field string) (decimal.Decimal, error) {
	p, err := domain.ParsePrice(s)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, domain.ErrNegative):
		return decimal.Decimal{}, newError(KindInvalidInput, field+" must be non-negative", err)
	case errors.Is(err, domain.ErrOutOfRange):
		return decimal.Decimal{}, newError(KindInvalidInput, field+" is out of range", err)
	default:
		return decimal.Decimal{}, newError(KindInvalidInput, field+" must be numeric", err)
	}
}
