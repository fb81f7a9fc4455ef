package application

import (
	"context"
	"encoding/json"

	"currency-gateway/internal/domain"

	"github.com/shopspring/decimal"
)

type RateProvider interface {
	RateTable(ctx context.Context, base domain.Currency) (domain.RateTable, error)
}

type CryptoProvider interface {
	Currencies(ctx context.Context) ([]json.RawMessage, error)
	SpotPrice(ctx context.Context, base, quote domain.CryptoSymbol) (domain.CryptoQuote, error)
}

// AssetRepo reports ErrNotFound when an update matches no row and
// ErrDuplicate when an insert collides with an existing symbol.
type AssetRepo interface {
	UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) error
	Insert(ctx context.Context, a domain.Asset) error
}
