package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const maxSymbolLen = 32

// Prices are stored as NUMERIC(30,10).
const (
	maxPriceIntDigits = 20
	maxPriceScale     = 10
	minPriceExponent  = -(maxPriceScale + maxPriceIntDigits)
)

// Asset is a tradable product row of the orderbook database.
type Asset struct {
	Symbol      string
	Price       decimal.Decimal
	ProductType string
	Name        string
}

func ParseSymbol(s string) (string, error) {
	sym := strings.TrimSpace(s)
	if sym == "" || len(sym) > maxSymbolLen {
		return "", ErrInvalidSymbol
	}
	return sym, nil
}

// ParsePrice parses a non-negative decimal price that fits the price column.
// The exponent is checked before anything expands the coefficient.
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, ErrNotNumeric
	}
	if d.IsNegative() {
		return decimal.Decimal{}, ErrNegative
	}
	exp := int(d.Exponent())
	if exp < minPriceExponent || exp > maxPriceIntDigits {
		return decimal.Decimal{}, ErrOutOfRange
	}
	if !d.IsZero() && d.NumDigits()+exp > maxPriceIntDigits {
		return decimal.Decimal{}, ErrOutOfRange
	}
	return d, nil
}
