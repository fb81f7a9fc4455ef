package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// RateTable holds the rates from one base currency to every target the provider knows.
type RateTable struct {
	Base      Currency
	Rates     map[Currency]float64
	UpdatedAt time.Time
}

// NewRateTable uppercases the keys of raw and drops entries that are not positive finite numbers.
func NewRateTable(base Currency, raw map[string]float64, updatedAt time.Time) RateTable {
	rates := make(map[Currency]float64, len(raw))
	for k, v := range raw {
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		rates[Currency(strings.ToUpper(strings.TrimSpace(k)))] = v
	}
	return RateTable{Base: base, Rates: rates, UpdatedAt: updatedAt}
}

func (t RateTable) Rate(to Currency) (float64, bool) {
	r, ok := t.Rates[to]
	return r, ok
}

// Codes returns the target currencies in ascending order.
func (t RateTable) Codes() []Currency {
	out := make([]Currency, 0, len(t.Rates))
	for c := range t.Rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
