package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.CacheTTL() != time.Hour {
		t.Errorf("cache ttl = %v, want 1h", cfg.CacheTTL())
	}
	if cfg.Analysis.RSI.Period != 14 {
		t.Errorf("analysis defaults missing: rsi period = %d", cfg.Analysis.RSI.Period)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoad_FileAndOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
watchlist: [AAPL, MSFT]
cache:
  backend: sqlite
  ttl_minutes: 30
analysis:
  rsi:
    period: 21
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Watchlist) != 2 || cfg.Watchlist[0] != "AAPL" {
		t.Errorf("watchlist = %v", cfg.Watchlist)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.TTLMinutes != 30 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Analysis.RSI.Period != 21 {
		t.Errorf("rsi period = %d, want 21 from file", cfg.Analysis.RSI.Period)
	}
	// Untouched analysis parameters keep their defaults.
	if cfg.Analysis.MACD.Slow != 26 {
		t.Errorf("macd slow = %d, want default 26", cfg.Analysis.MACD.Slow)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("CACHE_BACKEND", "none")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "123")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("server addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "none" {
		t.Errorf("cache backend = %q, want env value", cfg.Cache.Backend)
	}
	if !cfg.TelegramEnabled() {
		t.Error("telegram must be enabled with token and chat id set")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"negative ttl", func(c *Config) { c.Cache.TTLMinutes = -1 }},
		{"zero refresh days", func(c *Config) { c.Schedule.RefreshDays = 0 }},
		{"token without chat id", func(c *Config) { c.Telegram.BotToken = "tok" }},
		{"rsi period too small", func(c *Config) { c.Analysis.RSI.Period = 1 }},
		{"macd slow below fast", func(c *Config) { c.Analysis.MACD.Slow = 5 }},
		{"sar accel above max", func(c *Config) { c.Analysis.SAR.Accel = 0.5 }},
		{"empty ma periods", func(c *Config) { c.Analysis.MA.Periods = nil }},
		{"negative ma period", func(c *Config) { c.Analysis.MA.Periods = []int{20, -5} }},
		{"zero atr period", func(c *Config) { c.Analysis.ATR.Period = 0 }},
		{"zero stochastic k", func(c *Config) { c.Analysis.Stochastic.K = 0 }},
		{"zero adx period", func(c *Config) { c.Analysis.ADX.Period = 0 }},
		{"zero volume ma period", func(c *Config) { c.Analysis.Volume.MAPeriod = 0 }},
		{"zero spike ratio", func(c *Config) { c.Analysis.Volume.SpikeRatio = 0 }},
		{"zero level window", func(c *Config) { c.Analysis.Levels.Window = 0 }},
		{"zero max levels", func(c *Config) { c.Analysis.Levels.MaxLevels = 0 }},
		{"tolerance out of range", func(c *Config) { c.Analysis.Levels.Tolerance = 1.5 }},
		{"zero ichimoku base", func(c *Config) { c.Analysis.Ichimoku.Base = 0 }},
		{"negative ichimoku displacement", func(c *Config) { c.Analysis.Ichimoku.Displacement = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
