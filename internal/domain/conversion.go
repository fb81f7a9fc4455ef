package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

type ConversionResult struct {
	From      Currency
	To        Currency
	Rate      float64
	Amount    *float64
	Converted *float64
}

// ParseAmount accepts any non-negative finite float literal.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		// Overflowing literals come back as ±Inf with ErrRange.
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrNotFinite
		}
		return 0, ErrNotNumeric
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	if v < 0 {
		return 0, ErrNegative
	}
	return v, nil
}

// WithAmount fills Amount and Converted = amount * Rate.
func (r ConversionResult) WithAmount(amount float64) ConversionResult {
	converted := amount * r.Rate
	r.Amount = &amount
	r.Converted = &converted
	return r
}
