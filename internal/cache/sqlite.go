package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockLens/internal/model"
)

// SQLiteStore persists cached series to a SQLite database so warm data
// survives restarts.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex

	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_cache (
			key        TEXT PRIMARY KEY,
			ticker     TEXT NOT NULL,
			bars       TEXT NOT NULL,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_series_expires ON series_cache(expires_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

func (s *SQLiteStore) Get(ctx context.Context, ticker string, days int) (*model.Series, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT bars, expires_at FROM series_cache WHERE key = ?`,
		key(ticker, days),
	).Scan(&raw, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite cache get: %w", err)
	}
	if s.now().Unix() >= expiresAt {
		return nil, false, nil
	}

	var bars []model.Bar
	if err := json.Unmarshal([]byte(raw), &bars); err != nil {
		return nil, false, fmt.Errorf("sqlite cache decode: %w", err)
	}
	return &model.Series{Ticker: ticker, Bars: bars}, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, series *model.Series, days int, ttl time.Duration) error {
	raw, err := json.Marshal(series.Bars)
	if err != nil {
		return fmt.Errorf("sqlite cache encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO series_cache (key, ticker, bars, expires_at)
		 VALUES (?,?,?,?)
		 ON CONFLICT(key) DO UPDATE SET bars=excluded.bars, expires_at=excluded.expires_at`,
		key(series.Ticker, days), series.Ticker, string(raw), s.now().Add(ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite cache set: %w", err)
	}
	return nil
}

// Prune deletes expired rows. Called periodically by the scheduler.
func (s *SQLiteStore) Prune(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM series_cache WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("sqlite cache prune: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite cache")
	return s.db.Close()
}
