package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"StockLens/internal/cache"
	"StockLens/internal/collector"
	"StockLens/internal/config"
	"StockLens/internal/metrics"
	"StockLens/internal/notifier"
	"StockLens/internal/pipeline"
	"StockLens/internal/scheduler"
	"StockLens/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockLens starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Data sources, highest priority first
	sources := []collector.Source{{
		Fetcher:     collector.NewYahooFetcher(cfg.Proxy),
		MinInterval: time.Duration(cfg.DataSource.YahooMinInterval) * time.Second,
	}}
	if cfg.DataSource.AlphaVantageKey != "" {
		sources = append(sources, collector.Source{
			Fetcher:     collector.NewAlphaVantageFetcher(cfg.DataSource.AlphaVantageKey, cfg.Proxy),
			MinInterval: time.Duration(cfg.DataSource.AlphaVantageMinInterval) * time.Second,
		})
	}
	for _, s := range sources {
		log.Printf("[INFO] data source: %s", s.Fetcher.Name())
	}

	// Metrics
	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Cache backend
	store, pruner := buildCache(cfg)
	defer store.Close()
	log.Printf("[INFO] cache backend: %s", store.Name())

	// Collector and pipeline
	col := collector.NewCollector(sources, m)
	pipe := pipeline.New(col, store, m, cfg.Analysis, cfg.CacheTTL())

	// Notifier
	var n notifier.Notifier = notifier.NewNoopNotifier()
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scheduler
	sched := scheduler.NewScheduler(ctx, pipe, n, pruner, cfg.Watchlist, cfg.Schedule.RefreshDays)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.PruneCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Telegram command polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	// HTTP API
	srv := server.New(cfg.Server.Addr, pipe, m)
	srv.Start()

	// Optional: refresh immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	log.Println("[INFO] StockLens is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] StockLens stopped")
}

// buildCache constructs the configured cache backend. SQLite and Redis get a
// small in-memory front; a failed backend falls back to memory only.
func buildCache(cfg *config.Config) (cache.Store, scheduler.Pruner) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNoopStore(), nil
	case "sqlite":
		s, err := cache.NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using memory: %v", err)
			return cache.NewMemoryStore(cfg.Cache.MaxEntries), nil
		}
		return cache.NewTieredStore(cache.NewMemoryStore(cfg.Cache.MaxEntries), s), s
	case "redis":
		s, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			log.Printf("[WARN] init redis cache failed, using memory: %v", err)
			return cache.NewMemoryStore(cfg.Cache.MaxEntries), nil
		}
		return cache.NewTieredStore(cache.NewMemoryStore(cfg.Cache.MaxEntries), s), nil
	default:
		return cache.NewMemoryStore(cfg.Cache.MaxEntries), nil
	}
}
