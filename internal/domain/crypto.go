package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CryptoQuote is a spot price for Base expressed in Currency.
// Raw keeps the provider body so it can be returned untouched.
type CryptoQuote struct {
	Base     CryptoSymbol
	Currency CryptoSymbol
	Amount   decimal.Decimal
	Raw      json.RawMessage
}
