package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"StockLens/internal/model"
)

// MemoryStore is an in-process LRU cache with per-entry expiry.
type MemoryStore struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front = most recently used

	now func() time.Time
}

type memoryEntry struct {
	key       string
	series    *model.Series
	expiresAt time.Time
}

// NewMemoryStore creates an LRU store holding at most maxEntries series.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &MemoryStore{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Get(_ context.Context, ticker string, days int) (*model.Series, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key(ticker, days)]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*memoryEntry)
	if s.now().After(entry.expiresAt) {
		s.order.Remove(el)
		delete(s.entries, entry.key)
		return nil, false, nil
	}
	s.order.MoveToFront(el)
	return entry.series, true, nil
}

func (s *MemoryStore) Set(_ context.Context, series *model.Series, days int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(series.Ticker, days)
	if el, ok := s.entries[k]; ok {
		entry := el.Value.(*memoryEntry)
		entry.series = series
		entry.expiresAt = s.now().Add(ttl)
		s.order.MoveToFront(el)
		return nil
	}

	s.entries[k] = s.order.PushFront(&memoryEntry{
		key:       k,
		series:    series,
		expiresAt: s.now().Add(ttl),
	})
	for len(s.entries) > s.maxEntries {
		oldest := s.order.Back()
		s.order.Remove(oldest)
		delete(s.entries, oldest.Value.(*memoryEntry).key)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
