// Package collector fetches daily OHLCV history from external data sources.
// Sources are tried in priority order; a source that fails repeatedly is
// sidelined for a cooldown period, and each source honors a minimum interval
// between requests.
package collector

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"StockLens/internal/metrics"
	"StockLens/internal/model"
)

const (
	maxConsecutiveFailures = 3
	disableCooldown        = 10 * time.Minute
)

// Source wraps a Fetcher with its chain position and rate limit.
type Source struct {
	Fetcher     Fetcher
	MinInterval time.Duration
}

type sourceState struct {
	failures      int
	disabledUntil time.Time
	lastRequest   time.Time
}

// Collector tries each configured source in order until one returns a valid
// series.
type Collector struct {
	sources []Source
	metrics *metrics.Metrics

	mu    sync.Mutex
	state map[string]*sourceState

	// now is swappable for tests.
	now func() time.Time
}

// NewCollector creates a collector over the given sources, highest priority
// first. Metrics may be nil.
func NewCollector(sources []Source, m *metrics.Metrics) *Collector {
	st := make(map[string]*sourceState, len(sources))
	for _, s := range sources {
		st[s.Fetcher.Name()] = &sourceState{}
	}
	return &Collector{
		sources: sources,
		metrics: m,
		state:   st,
		now:     time.Now,
	}
}

// Collect fetches up to days of daily history for ticker from the first
// source able to serve it.
func (c *Collector) Collect(ctx context.Context, ticker string, days int) (*model.Series, error) {
	if len(c.sources) == 0 {
		return nil, fmt.Errorf("collect %s: no data sources configured", ticker)
	}

	var lastErr error
	for _, src := range c.sources {
		name := src.Fetcher.Name()
		if wait, ok := c.admit(name, src.MinInterval); !ok {
			log.Printf("[WARN] source %s skipped: rate limited for another %s", name, wait.Round(time.Second))
			continue
		}

		start := time.Now()
		bars, err := src.Fetcher.FetchDailyBars(ctx, ticker, days)
		if c.metrics != nil {
			c.metrics.FetchDur.Observe(time.Since(start).Seconds())
		}
		if err == nil {
			series := &model.Series{Ticker: ticker, Bars: bars}
			err = series.Validate()
			if err == nil {
				c.recordSuccess(name)
				return series, nil
			}
		}

		lastErr = fmt.Errorf("source %s: %w", name, err)
		log.Printf("[WARN] fetch %s from %s failed: %v", ticker, name, err)
		c.recordFailure(name)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("collect %s: %w", ticker, ctx.Err())
		}
	}
	if lastErr == nil {
		return nil, fmt.Errorf("collect %s: all sources disabled or rate limited", ticker)
	}
	return nil, fmt.Errorf("collect %s: all sources failed: %w", ticker, lastErr)
}

// admit checks whether the source may be used now, recording the request
// time if so. The returned duration is how long the caller would have to
// wait, for logging only.
func (c *Collector) admit(name string, minInterval time.Duration) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state[name]
	now := c.now()
	if now.Before(st.disabledUntil) {
		return st.disabledUntil.Sub(now), false
	}
	if minInterval > 0 && !st.lastRequest.IsZero() {
		if elapsed := now.Sub(st.lastRequest); elapsed < minInterval {
			return minInterval - elapsed, false
		}
	}
	st.lastRequest = now
	return 0, true
}

func (c *Collector) recordSuccess(name string) {
	c.mu.Lock()
	st := c.state[name]
	st.failures = 0
	st.disabledUntil = time.Time{}
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.FetchesTotal.WithLabelValues(name, "ok").Inc()
		c.metrics.SourceDisabled.WithLabelValues(name).Set(0)
	}
}

func (c *Collector) recordFailure(name string) {
	c.mu.Lock()
	st := c.state[name]
	st.failures++
	disabled := st.failures >= maxConsecutiveFailures
	if disabled {
		st.disabledUntil = c.now().Add(disableCooldown)
		st.failures = 0
	}
	c.mu.Unlock()

	if disabled {
		log.Printf("[WARN] source %s disabled for %s after %d consecutive failures",
			name, disableCooldown, maxConsecutiveFailures)
	}
	if c.metrics != nil {
		c.metrics.FetchesTotal.WithLabelValues(name, "error").Inc()
		if disabled {
			c.metrics.SourceDisabled.WithLabelValues(name).Set(1)
		}
	}
}
