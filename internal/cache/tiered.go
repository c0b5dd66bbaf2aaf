package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockLens/internal/model"
)

// TieredStore layers a fast in-memory store over a persistent one. Reads
// check memory first and promote persistent hits; writes go to both.
type TieredStore struct {
	memory     *MemoryStore
	persistent Store
}

// NewTieredStore wraps persistent with an in-memory front.
func NewTieredStore(memory *MemoryStore, persistent Store) *TieredStore {
	return &TieredStore{memory: memory, persistent: persistent}
}

func (s *TieredStore) Name() string {
	return fmt.Sprintf("memory+%s", s.persistent.Name())
}

func (s *TieredStore) Get(ctx context.Context, ticker string, days int) (*model.Series, bool, error) {
	if series, ok, _ := s.memory.Get(ctx, ticker, days); ok {
		return series, true, nil
	}
	series, ok, err := s.persistent.Get(ctx, ticker, days)
	if err != nil || !ok {
		return nil, false, err
	}
	// Promote with a short TTL so memory never outlives the backing entry
	// by much.
	if err := s.memory.Set(ctx, series, days, 5*time.Minute); err != nil {
		log.Printf("[WARN] cache promote failed: %v", err)
	}
	return series, true, nil
}

func (s *TieredStore) Set(ctx context.Context, series *model.Series, days int, ttl time.Duration) error {
	if err := s.memory.Set(ctx, series, days, ttl); err != nil {
		return err
	}
	return s.persistent.Set(ctx, series, days, ttl)
}

func (s *TieredStore) Close() error {
	return s.persistent.Close()
}
