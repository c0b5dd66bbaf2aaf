// Package pipeline ties collection, caching and analysis together: it
// produces a full analysis report for a ticker, hitting the cache before the
// upstream sources.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockLens/internal/analysis"
	"StockLens/internal/cache"
	"StockLens/internal/collector"
	"StockLens/internal/metrics"
	"StockLens/internal/model"
	"StockLens/internal/signal"
)

// Report is the complete output for one ticker.
type Report struct {
	Series  *model.Series         `json:"-"`
	Table   *analysis.ResultTable `json:"-"`
	Summary analysis.Summary      `json:"summary"`
	Signals []model.Signal        `json:"signals"`
}

// Pipeline fetches, caches and analyzes daily series.
type Pipeline struct {
	Collector *collector.Collector
	Cache     cache.Store
	Metrics   *metrics.Metrics
	Config    analysis.Config
	CacheTTL  time.Duration
}

// New wires a pipeline. Cache and Metrics may be nil; a nil cache means
// every request goes upstream.
func New(col *collector.Collector, store cache.Store, m *metrics.Metrics, cfg analysis.Config, ttl time.Duration) *Pipeline {
	if store == nil {
		store = cache.NewNoopStore()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Pipeline{
		Collector: col,
		Cache:     store,
		Metrics:   m,
		Config:    cfg,
		CacheTTL:  ttl,
	}
}

// Analyze returns the full report for ticker over days of history.
func (p *Pipeline) Analyze(ctx context.Context, ticker string, days int) (*Report, error) {
	series, err := p.series(ctx, ticker, days)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := analysis.Run(series, p.Config)
	if p.Metrics != nil {
		p.Metrics.AnalysisDur.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if p.Metrics != nil {
			p.Metrics.AnalysisRunsTotal.WithLabelValues("error").Inc()
		}
		return nil, fmt.Errorf("analyze %s: %w", ticker, err)
	}

	signals := signal.Evaluate(table, series, p.Config)
	if p.Metrics != nil {
		p.Metrics.AnalysisRunsTotal.WithLabelValues("ok").Inc()
		for _, sig := range signals {
			p.Metrics.SignalsTotal.WithLabelValues(string(sig.Kind)).Inc()
		}
	}

	return &Report{
		Series:  series,
		Table:   table,
		Summary: table.Summarize(series, signals),
		Signals: signals,
	}, nil
}

func (p *Pipeline) series(ctx context.Context, ticker string, days int) (*model.Series, error) {
	series, ok, err := p.Cache.Get(ctx, ticker, days)
	if err != nil {
		log.Printf("[WARN] cache get %s: %v", ticker, err)
	}
	if ok {
		if p.Metrics != nil {
			p.Metrics.CacheHitsTotal.WithLabelValues(p.Cache.Name()).Inc()
		}
		return series, nil
	}
	if p.Metrics != nil {
		p.Metrics.CacheMissesTotal.WithLabelValues(p.Cache.Name()).Inc()
	}

	series, err = p.Collector.Collect(ctx, ticker, days)
	if err != nil {
		return nil, err
	}
	if err := p.Cache.Set(ctx, series, days, p.CacheTTL); err != nil {
		log.Printf("[WARN] cache set %s: %v", ticker, err)
	}
	return series, nil
}
