// Package cache stores fetched daily series so repeated analysis requests do
// not hit the upstream data sources. Entries are keyed by ticker and the
// requested history length, and expire after a configurable TTL.
package cache

import (
	"context"
	"fmt"
	"time"

	"StockLens/internal/model"
)

// Store is a series cache backend.
type Store interface {
	// Get returns the cached series for ticker/days, or ok=false on a miss
	// or expired entry.
	Get(ctx context.Context, ticker string, days int) (series *model.Series, ok bool, err error)
	// Set stores the series under ticker/days for ttl.
	Set(ctx context.Context, series *model.Series, days int, ttl time.Duration) error
	Name() string
	Close() error
}

func key(ticker string, days int) string {
	return fmt.Sprintf("series:%s:%d", ticker, days)
}
