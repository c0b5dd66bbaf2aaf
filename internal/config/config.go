// Package config loads the application configuration from YAML with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"StockLens/internal/analysis"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		AlphaVantageKey string `yaml:"alphavantage_key"`
		// Minimum seconds between requests per source; Alpha Vantage's
		// free tier allows 5 requests per minute.
		YahooMinInterval        int `yaml:"yahoo_min_interval"`
		AlphaVantageMinInterval int `yaml:"alphavantage_min_interval"`
	} `yaml:"data_source"`
	Cache struct {
		Backend    string `yaml:"backend"` // memory, sqlite, redis, none
		TTLMinutes int    `yaml:"ttl_minutes"`
		MaxEntries int    `yaml:"max_entries"`
		SQLitePath string `yaml:"sqlite_path"`
		Redis      struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Watchlist []string `yaml:"watchlist"`
	Schedule  struct {
		RefreshCron string `yaml:"refresh_cron"`
		PruneCron   string `yaml:"prune_cron"`
		RefreshDays int    `yaml:"refresh_days"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy    string          `yaml:"proxy"`
	Analysis analysis.Config `yaml:"analysis"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Analysis: analysis.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALPHAVANTAGE_KEY"); v != "" {
		cfg.DataSource.AlphaVantageKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 128
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = "data/stocklens.db"
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
	}
	if cfg.Schedule.RefreshCron == "" {
		// Weekdays after US market close.
		cfg.Schedule.RefreshCron = "0 30 16 * * 1-5"
	}
	if cfg.Schedule.PruneCron == "" {
		cfg.Schedule.PruneCron = "@hourly"
	}
	if cfg.Schedule.RefreshDays == 0 {
		cfg.Schedule.RefreshDays = 250
	}
	if cfg.DataSource.AlphaVantageMinInterval == 0 {
		cfg.DataSource.AlphaVantageMinInterval = 15
	}

	return cfg, nil
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// TelegramEnabled reports whether Telegram notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks field consistency. Telegram is optional; everything else
// has a usable default.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "sqlite", "redis", "none":
	default:
		return fmt.Errorf("cache.backend must be one of memory, sqlite, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must not be negative")
	}
	if c.Schedule.RefreshDays <= 0 {
		return fmt.Errorf("schedule.refresh_days must be positive")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return validateAnalysis(&c.Analysis)
}

func validateAnalysis(a *analysis.Config) error {
	if a.RSI.Period < 2 {
		return fmt.Errorf("analysis.rsi.period must be at least 2")
	}
	if a.MACD.Fast <= 0 || a.MACD.Slow <= a.MACD.Fast || a.MACD.Signal <= 0 {
		return fmt.Errorf("analysis.macd periods must satisfy 0 < fast < slow, signal > 0")
	}
	if a.Bollinger.Period < 2 || a.Bollinger.StdDev <= 0 {
		return fmt.Errorf("analysis.bollinger requires period >= 2 and a positive multiplier")
	}
	if a.ATR.Period <= 0 {
		return fmt.Errorf("analysis.atr.period must be positive")
	}
	if a.Stochastic.K <= 0 || a.Stochastic.D <= 0 {
		return fmt.Errorf("analysis.stochastic periods must be positive")
	}
	if a.ADX.Period <= 0 {
		return fmt.Errorf("analysis.adx.period must be positive")
	}
	if a.SAR.Accel <= 0 || a.SAR.MaxAccel < a.SAR.Accel {
		return fmt.Errorf("analysis.sar requires 0 < accel <= max_accel")
	}
	if len(a.MA.Periods) == 0 {
		return fmt.Errorf("analysis.ma.periods must not be empty")
	}
	for _, p := range a.MA.Periods {
		if p <= 0 {
			return fmt.Errorf("analysis.ma.periods must all be positive, got %d", p)
		}
	}
	if a.Volume.MAPeriod <= 0 || a.Volume.SpikeRatio <= 0 {
		return fmt.Errorf("analysis.volume requires a positive ma_period and spike_ratio")
	}
	if a.Levels.Window <= 0 || a.Levels.MaxLevels <= 0 {
		return fmt.Errorf("analysis.levels requires a positive window and max_levels")
	}
	if a.Levels.Tolerance <= 0 || a.Levels.Tolerance >= 1 {
		return fmt.Errorf("analysis.levels.tolerance must be in (0, 1)")
	}
	if a.Ichimoku.Conversion <= 0 || a.Ichimoku.Base <= 0 || a.Ichimoku.Leading <= 0 || a.Ichimoku.Displacement < 0 {
		return fmt.Errorf("analysis.ichimoku periods must be positive and displacement non-negative")
	}
	return nil
}
