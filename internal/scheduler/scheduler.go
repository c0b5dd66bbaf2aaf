// Package scheduler runs the periodic watchlist refresh: re-fetch every
// watched ticker, re-analyze it and push any active signals to the notifier.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"

	"StockLens/internal/notifier"
	"StockLens/internal/pipeline"
)

// Pruner is implemented by cache backends that can drop expired entries.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  *pipeline.Pipeline
	Notifier  notifier.Notifier
	Pruner    Pruner // nil when the cache backend has nothing to prune
	Watchlist []string
	Days      int
	Ctx       context.Context
}

// NewScheduler creates a scheduler over the given watchlist. Days is the
// history length analyzed on each refresh.
func NewScheduler(ctx context.Context, pipe *pipeline.Pipeline, n notifier.Notifier, pruner Pruner, watchlist []string, days int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Pipeline:  pipe,
		Notifier:  n,
		Pruner:    pruner,
		Watchlist: watchlist,
		Days:      days,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh and cache-prune tasks.
func (s *Scheduler) RegisterAll(refreshCron, pruneCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if s.Pruner != nil {
		if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
			return fmt.Errorf("register prune task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the watchlist refresh immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] refreshing watchlist (%d tickers)", len(s.Watchlist))
	for _, ticker := range s.Watchlist {
		if s.Ctx.Err() != nil {
			return
		}
		report, err := s.Pipeline.Analyze(s.Ctx, ticker, s.Days)
		if err != nil {
			log.Printf("[ERROR] refresh %s: %v", ticker, err)
			continue
		}
		if len(report.Signals) == 0 {
			continue
		}
		log.Printf("[INFO] %s: %d active signals", ticker, len(report.Signals))
		s.trySend(notifier.FormatAlert(report.Summary))
	}
}

func (s *Scheduler) pruneTask() {
	n, err := s.Pruner.Prune(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] cache prune: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] cache prune removed %d entries", n)
	}
}

// HandleCommand processes a Telegram command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "usage: /analyze TICKER [days]"
		}
		days := s.Days
		if len(fields) >= 3 {
			n, err := strconv.Atoi(fields[2])
			if err != nil || n <= 0 {
				return "days must be a positive integer"
			}
			days = n
		}
		report, err := s.Pipeline.Analyze(ctx, strings.ToUpper(fields[1]), days)
		if err != nil {
			return fmt.Sprintf("analysis failed: %v", err)
		}
		return notifier.FormatSummary(report.Summary)
	case "/watchlist":
		return "Watching: " + strings.Join(s.Watchlist, ", ")
	case "/refresh":
		go s.refreshTask()
		return "refresh started"
	default:
		return "commands:\n/analyze TICKER [days]\n/watchlist\n/refresh"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
