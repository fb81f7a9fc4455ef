package domain

import "errors"

var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrNotNumeric      = errors.New("value is not numeric")
	ErrNegative        = errors.New("value is negative")
	ErrNotFinite       = errors.New("value is not finite")
	ErrOutOfRange      = errors.New("value is out of range")
)
