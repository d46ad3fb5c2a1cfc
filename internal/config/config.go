package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"BankLens/internal/collector"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		Provider      string   `yaml:"provider"`
		BaseURL       string   `yaml:"base_url"`
		APIKey        string   `yaml:"api_key"`
		LookbackDays  int      `yaml:"lookback_days"`
		RatePerSecond float64  `yaml:"rate_per_second"`
		Tickers       []string `yaml:"tickers"`
	} `yaml:"data_source"`
	Reference struct {
		MetricsFile string `yaml:"metrics_file"`
		SummaryFile string `yaml:"summary_file"`
		VisualDir   string `yaml:"visual_dir"`
	} `yaml:"reference"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Path returns CONFIG_PATH or DefaultPath.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults fill the gaps.
func Load(path string) (*Config, error) {
	LoadDotenvOnce()

	cfg := &Config{}

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
	if v := os.Getenv("BANKLENS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_SOURCE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.LookbackDays = n
		}
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.DataSource.Tickers = strings.Split(v, ",")
	}
	cfg.DataSource.Tickers = normalizeTickers(cfg.DataSource.Tickers)
	if v := os.Getenv("METRICS_FILE"); v != "" {
		cfg.Reference.MetricsFile = v
	}
	if v := os.Getenv("SUMMARY_FILE"); v != "" {
		cfg.Reference.SummaryFile = v
	}
	if v := os.Getenv("VISUAL_DIR"); v != "" {
		cfg.Reference.VisualDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SNAPSHOT"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 60
	}
	if cfg.DataSource.RatePerSecond == 0 {
		cfg.DataSource.RatePerSecond = 2
	}
	if len(cfg.DataSource.Tickers) == 0 {
		cfg.DataSource.Tickers = []string{"BBCA", "BBRI", "BMRI", "BBNI", "BBTN"}
	}
	if cfg.Reference.MetricsFile == "" {
		cfg.Reference.MetricsFile = "data/metrics.json"
	}
	if cfg.Reference.SummaryFile == "" {
		cfg.Reference.SummaryFile = "data/data_summary.json"
	}
	if cfg.Reference.VisualDir == "" {
		cfg.Reference.VisualDir = "visualizations"
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, rest, mock", c.DataSource.Provider)
	}
	if c.DataSource.LookbackDays < 26 {
		return fmt.Errorf("data_source.lookback_days must be at least 26, got %d", c.DataSource.LookbackDays)
	}
	if c.DataSource.RatePerSecond < 0 {
		return fmt.Errorf("data_source.rate_per_second must not be negative")
	}
	for _, t := range c.DataSource.Tickers {
		if _, ok := collector.DefaultSymbols[t]; !ok {
			return fmt.Errorf("data_source.tickers: unknown ticker %q", t)
		}
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether the Telegram digest is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// normalizeTickers trims and upper-cases tickers from YAML or TICKERS and
// drops empty entries.
func normalizeTickers(in []string) []string {
	var out []string
	for _, t := range in {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
