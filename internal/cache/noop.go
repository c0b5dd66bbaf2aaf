package cache

import (
	"context"
	"time"

	"StockLens/internal/model"
)

// NoopStore is used when caching is disabled: every Get is a miss.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (NoopStore) Name() string { return "noop" }

func (NoopStore) Get(_ context.Context, _ string, _ int) (*model.Series, bool, error) {
	return nil, false, nil
}

func (NoopStore) Set(_ context.Context, _ *model.Series, _ int, _ time.Duration) error {
	return nil
}

func (NoopStore) Close() error { return nil }
