// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int    `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// BillingConfig carries the pricing constants. TaxRate is the PPN fraction
// applied to the per-person price (0.11 = 11%); amounts are whole IDR.
type BillingConfig struct {
	TaxRate   float64 `yaml:"tax_rate"`
	TrxPrefix string  `yaml:"trx_prefix"`
}

type AdminConfig struct {
	Secret     string        `yaml:"secret"`      // login secret exchanged for a session token
	JWTSecret  string        `yaml:"jwt_secret"`  // HMAC key for session tokens
	SessionTTL time.Duration `yaml:"session_ttl"` // e.g. 30m
}

type NotifierConfig struct {
	WebhookURL string        `yaml:"webhook_url"` // empty disables delivery (noop)
	Timeout    time.Duration `yaml:"timeout"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Billing  BillingConfig  `yaml:"billing"`
	Admin    AdminConfig    `yaml:"admin"`
	Notifier NotifierConfig `yaml:"notifier"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Billing.TaxRate == 0 {
		cfg.Billing.TaxRate = 0.11
	}
	if cfg.Billing.TrxPrefix == "" {
		cfg.Billing.TrxPrefix = "PTGN"
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}
	if cfg.Notifier.Timeout <= 0 {
		cfg.Notifier.Timeout = 10 * time.Second
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Billing.TaxRate < 0 || cfg.Billing.TaxRate >= 1 {
		return nil, errors.New("billing.tax_rate must be in [0, 1)")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	return ttl
}
