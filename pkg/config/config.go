package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Webhook server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:superbot.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Transport TransportConfig `yaml:"transport" json:"transport" jsonschema:"description=Outbound WhatsApp transport configuration"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Content feed configuration"`

	FactSource FactSourceConfig `yaml:"fact_source" json:"fact_source" jsonschema:"description=Fact-of-the-day source configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for headline rewriting"`

	Digest DigestConfig `yaml:"digest" json:"digest" jsonschema:"description=Digest runs configuration"`
}

// TransportConfig holds settings for the local message-transport sidecar
type TransportConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=Transport sidecar send endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=Optional bearer token for the transport endpoint"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Send request timeout"`
}

// FeedConfig holds content feed endpoints
type FeedConfig struct {
	DailyURL  string        `yaml:"daily_url" json:"daily_url" jsonschema:"required,description=Endpoint returning today's notes grouped by department"`
	WeeklyURL string        `yaml:"weekly_url" json:"weekly_url" jsonschema:"required,description=Endpoint returning the week's notes grouped by topic"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Superbot/1.0,description=User agent for feed requests"`
}

// FactSourceConfig holds the fact-of-the-day source settings
type FactSourceConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable fact-of-the-day lookups"`
	URL     string        `yaml:"url" json:"url" jsonschema:"description=Endpoint returning fact-of-the-day rows"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Fact source request timeout"`
}

// LLMConfig holds LLM configuration for headline rewriting
type LLMConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable conversational headline rewriting"`
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.8,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=120,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// DigestConfig holds fan-out run settings
type DigestConfig struct {
	AdminPhone string        `yaml:"admin_phone" json:"admin_phone" jsonschema:"required,description=Operator phone receiving run summaries"`
	SendDelay  time.Duration `yaml:"send_delay" json:"send_delay" jsonschema:"default=2s,description=Fixed delay between sends"`
	DailyAt    string        `yaml:"daily_at" json:"daily_at" jsonschema:"default=17:00,description=Local time of the daily run (HH:MM)"`
	WeeklyAt   string        `yaml:"weekly_at" json:"weekly_at" jsonschema:"default=10:00,description=Local time of the weekly run (HH:MM)"`
	WeeklyDay  string        `yaml:"weekly_day" json:"weekly_day" jsonschema:"default=Saturday,description=Weekday of the weekly run"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:superbot.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for transport and feed
	if cfg.Transport.Timeout == 0 {
		cfg.Transport.Timeout = 30 * time.Second
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Feed.UserAgent == "" {
		cfg.Feed.UserAgent = "Superbot/1.0"
	}
	if cfg.FactSource.Timeout == 0 {
		cfg.FactSource.Timeout = 15 * time.Second
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.8
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 120
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	// set defaults for digest runs
	if cfg.Digest.SendDelay == 0 {
		cfg.Digest.SendDelay = 2 * time.Second
	}
	if cfg.Digest.DailyAt == "" {
		cfg.Digest.DailyAt = "17:00"
	}
	if cfg.Digest.WeeklyAt == "" {
		cfg.Digest.WeeklyAt = "10:00"
	}
	if cfg.Digest.WeeklyDay == "" {
		cfg.Digest.WeeklyDay = "Saturday"
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Transport.Endpoint == "" {
		return fmt.Errorf("transport.endpoint is required")
	}

	if cfg.Feed.DailyURL == "" {
		return fmt.Errorf("feed.daily_url is required")
	}
	if cfg.Feed.WeeklyURL == "" {
		return fmt.Errorf("feed.weekly_url is required")
	}

	if cfg.FactSource.Enabled && cfg.FactSource.URL == "" {
		return fmt.Errorf("fact_source.url is required when fact_source is enabled")
	}

	// validate LLM config only when rewriting is on
	if cfg.LLM.Enabled {
		if cfg.LLM.Model == "" {
			return fmt.Errorf("llm.model is required when llm is enabled")
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			return fmt.Errorf("llm.temperature must be between 0 and 2")
		}
	}

	if cfg.Digest.AdminPhone == "" {
		return fmt.Errorf("digest.admin_phone is required")
	}
	if _, err := ParseClock(cfg.Digest.DailyAt); err != nil {
		return fmt.Errorf("digest.daily_at: %w", err)
	}
	if _, err := ParseClock(cfg.Digest.WeeklyAt); err != nil {
		return fmt.Errorf("digest.weekly_at: %w", err)
	}
	if _, err := ParseWeekday(cfg.Digest.WeeklyDay); err != nil {
		return fmt.Errorf("digest.weekly_day: %w", err)
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// Clock is a time of day in the local timezone
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM string
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return c, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return c, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return c, nil
}

// ParseWeekday parses an English weekday name
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetDigestConfig returns digest run configuration
func (c *Config) GetDigestConfig() DigestConfig {
	return c.Digest
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
