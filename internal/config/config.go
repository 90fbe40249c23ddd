package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ChecklistSentinel/internal/checklist"
	"ChecklistSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Data struct {
		BarsFile string `yaml:"bars_file"`
		Symbol   string `yaml:"symbol"`
		Limit    int    `yaml:"limit"`
	} `yaml:"data"`
	Checklist struct {
		Revision   string         `yaml:"revision"`
		RubricFile string         `yaml:"rubric_file"`
		FlagsFile  string         `yaml:"flags_file"`
		EntryWait  *time.Duration `yaml:"entry_wait"`
	} `yaml:"checklist"`
	Indicators struct {
		MomentumLength int   `yaml:"rsi_length"`
		Simplified     *bool `yaml:"simplified"`
		Crossovers     *bool `yaml:"crossovers"`
		FastMA         int   `yaml:"sma_fast"`
		SlowMA         int   `yaml:"sma_slow"`
		Breakouts      *bool `yaml:"breakouts"`
		BreakoutWindow int   `yaml:"breakout_window"`
	} `yaml:"indicators"`
	Alerts struct {
		ScoreThreshold int `yaml:"score_threshold"`
		MaxRetries     int `yaml:"max_retries"`
		HistorySize    int `yaml:"history_size"`
	} `yaml:"alerts"`
	Schedule struct {
		EvaluateCron string `yaml:"evaluate_cron"`
	} `yaml:"schedule"`
	HTTP struct {
		Addr      string  `yaml:"addr"`
		RateLimit float64 `yaml:"rate_limit"`
		Burst     int     `yaml:"burst"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads .env, then the YAML file, then applies environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BARS_FILE"); v != "" {
		cfg.Data.BarsFile = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.Data.Symbol = v
	}
	if v := os.Getenv("CHECKLIST_REVISION"); v != "" {
		cfg.Checklist.Revision = v
	}
	if v := os.Getenv("RUBRIC_FILE"); v != "" {
		cfg.Checklist.RubricFile = v
	}
	if v := os.Getenv("FLAGS_FILE"); v != "" {
		cfg.Checklist.FlagsFile = v
	}
	if v := os.Getenv("ENTRY_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("ENTRY_WAIT: %w", err)
		}
		cfg.Checklist.EntryWait = &d
	}
	if v := os.Getenv("RSI_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("RSI_LENGTH: %w", err)
		}
		cfg.Indicators.MomentumLength = n
	}
	if v := os.Getenv("SIMPLIFIED_SIGNALS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SIMPLIFIED_SIGNALS: %w", err)
		}
		cfg.Indicators.Simplified = &b
	}
	if v := os.Getenv("ALERT_SCORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ALERT_SCORE: %w", err)
		}
		cfg.Alerts.ScoreThreshold = n
	}
	if v := os.Getenv("CRON_EVALUATE"); v != "" {
		cfg.Schedule.EvaluateCron = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Data.BarsFile == "" {
		cfg.Data.BarsFile = "data/bars.csv"
	}
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = "BTCUSDT"
	}
	if cfg.Data.Limit == 0 {
		cfg.Data.Limit = 500
	}
	if cfg.Checklist.Revision == "" {
		cfg.Checklist.Revision = checklist.DefaultRevision
	}
	if cfg.Checklist.EntryWait == nil {
		d := checklist.DefaultEntryWait
		cfg.Checklist.EntryWait = &d
	}
	if cfg.Indicators.MomentumLength == 0 {
		cfg.Indicators.MomentumLength = 14
	}
	if cfg.Indicators.Crossovers == nil {
		on := true
		cfg.Indicators.Crossovers = &on
	}
	if cfg.Indicators.Breakouts == nil {
		on := true
		cfg.Indicators.Breakouts = &on
	}
	if cfg.Alerts.MaxRetries == 0 {
		cfg.Alerts.MaxRetries = 3
	}
	if cfg.Alerts.HistorySize == 0 {
		cfg.Alerts.HistorySize = 200
	}
	if cfg.Schedule.EvaluateCron == "" {
		cfg.Schedule.EvaluateCron = "5 */15 * * * *"
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 20
	}
	if cfg.HTTP.Burst == 0 {
		cfg.HTTP.Burst = 50
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
// The Telegram section is optional; without it alerts go to the log.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	if c.Data.Limit < 0 {
		return fmt.Errorf("data.limit must not be negative")
	}
	if c.Indicators.MomentumLength < 2 || c.Indicators.MomentumLength > strategy.MaxMomentumLength {
		return fmt.Errorf("indicators.rsi_length must be in [2, %d]", strategy.MaxMomentumLength)
	}
	if c.Checklist.EntryWait != nil && *c.Checklist.EntryWait < 0 {
		return fmt.Errorf("checklist.entry_wait must not be negative")
	}
	if c.Indicators.FastMA < 0 || c.Indicators.SlowMA < 0 || c.Indicators.BreakoutWindow < 0 {
		return fmt.Errorf("indicators.sma_fast, sma_slow and breakout_window must not be negative")
	}
	if c.Alerts.ScoreThreshold < 0 || c.Alerts.ScoreThreshold > checklist.MaxScore {
		return fmt.Errorf("alerts.score_threshold must be in [0, %d]", checklist.MaxScore)
	}
	if c.Alerts.HistorySize < 0 {
		return fmt.Errorf("alerts.history_size must not be negative")
	}
	if c.Alerts.MaxRetries < 0 {
		return fmt.Errorf("alerts.max_retries must not be negative")
	}
	if c.HTTP.RateLimit < 0 || c.HTTP.Burst < 0 {
		return fmt.Errorf("http.rate_limit and http.burst must not be negative")
	}
	return nil
}

// TelegramEnabled reports whether alerts and commands go through Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

// EvaluatorConfig builds the evaluator settings. legacy is the rubric's legacy_signals flag,
// used unless indicators.simplified is set.
func (c *Config) EvaluatorConfig(legacy bool) strategy.Config {
	simplified := legacy
	if c.Indicators.Simplified != nil {
		simplified = *c.Indicators.Simplified
	}
	return strategy.Config{
		MomentumLength: c.Indicators.MomentumLength,
		Simplified:     simplified,
		Crossovers:     c.Indicators.Crossovers == nil || *c.Indicators.Crossovers,
		FastMA:         c.Indicators.FastMA,
		SlowMA:         c.Indicators.SlowMA,
		Breakouts:      c.Indicators.Breakouts == nil || *c.Indicators.Breakouts,
		BreakoutWindow: c.Indicators.BreakoutWindow,
	}
}

// EntryWait returns the configured cool-down, falling back to the default when unset.
func (c *Config) EntryWait() time.Duration {
	if c.Checklist.EntryWait == nil {
		return checklist.DefaultEntryWait
	}
	return *c.Checklist.EntryWait
}
