package domain

import (
	"regexp"
	"strings"
)

// Currency is an uppercase fiat code such as USD.
type Currency string

// CryptoSymbol is an uppercase asset code on the crypto provider, e.g. BTC or USDC.
// Quote currencies of a spot pair use the same shape.
type CryptoSymbol string

var (
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
	cryptoRe   = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)
)

// ParseCurrency trims and uppercases s and checks it is a three letter code.
func ParseCurrency(s string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !currencyRe.MatchString(c) {
		return "", ErrInvalidCurrency
	}
	return Currency(c), nil
}

func ParseCryptoSymbol(s string) (CryptoSymbol, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if !cryptoRe.MatchString(c) {
		return "", ErrInvalidCurrency
	}
	return CryptoSymbol(c), nil
}

// SpotPair renders the provider pair id, BASE-QUOTE.
func SpotPair(base, quote CryptoSymbol) string {
	return string(base) + "-" + string(quote)
}
