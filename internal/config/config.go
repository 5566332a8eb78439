package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	// timezone data for hosts without a zoneinfo database
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string
	Port        int

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// storage
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`

	// training load
	Timezone         string   `toml:"timezone"`
	MetricsCacheTTL  Duration `toml:"metrics_cache_ttl"`
	LocalCacheSizeMB int      `toml:"local_cache_size_mb"`
	// MCPUserID is the athlete MCP tool calls default to.
	MCPUserID        string   `toml:"mcp_user_id"`

	// limits
	ExportRateLimitAllowedPerMin int   `toml:"export_rate_limit_allowed_per_min"`
	ImportRateLimitAllowedPerMin int   `toml:"import_rate_limit_allowed_per_min"`
	MaxUploadSizeBytes           int64 `toml:"max_upload_size_bytes"`
}

// Location is the time zone calendar days are bucketed in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

// Duration decodes TOML strings like "10m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.MetricsCacheTTL.Duration == 0 {
		c.MetricsCacheTTL.Duration = 10 * time.Minute
	}
	if c.LocalCacheSizeMB == 0 {
		c.LocalCacheSizeMB = 32
	}
	if c.ExportRateLimitAllowedPerMin == 0 {
		c.ExportRateLimitAllowedPerMin = 30
	}
	if c.ImportRateLimitAllowedPerMin == 0 {
		c.ImportRateLimitAllowedPerMin = 10
	}
	if c.MaxUploadSizeBytes == 0 {
		c.MaxUploadSizeBytes = 32 << 20
	}
}

func (c *Config) validate() (err error) {
	if c.Port <= 0 {
		err = multierr.Append(err, errors.New("port not set"))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		err = multierr.Append(err, errors.New("postgres host, port and db name are required"))
	}
	if _, locErr := c.Location(); locErr != nil {
		err = multierr.Append(err, locErr)
	}
	return err
}
