package exchange

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	USD = "USD"
	HNL = "HNL"
)

// RateFetcher is satisfied by Client.
type RateFetcher interface {
	FetchRate(ctx context.Context, base, target string) (decimal.Decimal, bool)
}

// Board holds the rate shown on the exchange screen. It starts at the
// fallback and only moves when a lookup succeeds.
type Board struct {
	fetcher RateFetcher

	mu   sync.RWMutex
	rate decimal.Decimal
	live bool
}

func NewBoard(fetcher RateFetcher, fallback decimal.Decimal) *Board {
	return &Board{fetcher: fetcher, rate: fallback}
}

// Refresh looks the rate up again and reports whether it was updated.
func (b *Board) Refresh(ctx context.Context) bool {
	rate, ok := b.fetcher.FetchRate(ctx, USD, HNL)
	if !ok || !rate.IsPositive() {
		return false
	}
	b.mu.Lock()
	b.rate = rate
	b.live = true
	b.mu.Unlock()
	return true
}

// Rate returns the current rate and whether it came from a lookup.
func (b *Board) Rate() (decimal.Decimal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rate, b.live
}

// Conversion is the pair shown on the exchange screen. A side is invalid when
// its input was absent or the rate does not allow it.
type Conversion struct {
	Rate  decimal.Decimal
	Live  bool
	ToHNL decimal.NullDecimal
	ToUSD decimal.NullDecimal
}

func (b *Board) Convert(usd, hnl decimal.NullDecimal) Conversion {
	rate, live := b.Rate()
	c := Conversion{Rate: rate, Live: live}
	if usd.Valid {
		c.ToHNL = decimal.NewNullDecimal(ToHNL(usd.Decimal, rate))
	}
	if hnl.Valid {
		if out, ok := ToUSD(hnl.Decimal, rate); ok {
			c.ToUSD = decimal.NewNullDecimal(out)
		}
	}
	return c
}

// ToHNL converts dollars to lempiras, rounded to two places.
func ToHNL(usd, rate decimal.Decimal) decimal.Decimal {
	return usd.Mul(rate).Round(2)
}

// ToUSD converts lempiras to dollars, rounded to two places. It fails when
// rate is not positive.
func ToUSD(hnl, rate decimal.Decimal) (decimal.Decimal, bool) {
	if !rate.IsPositive() {
		return decimal.Zero, false
	}
	return hnl.Div(rate).Round(2), true
}
