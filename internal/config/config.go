package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type StoreDriver string

const (
	StoreDriverSqlite   StoreDriver = "sqlite"
	StoreDriverPostgres StoreDriver = "postgres"
)

type TimerBackend string

const (
	TimerBackendLocal    TimerBackend = "local"
	TimerBackendRabbitmq TimerBackend = "rabbitmq"
)

type Config struct {
	Debug          bool     `env:"DEBUG" envDefault:"false"`
	Host           string   `env:"HOST" envDefault:"127.0.0.1"`
	Port           uint16   `env:"PORT" envDefault:"8030"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"chrome-extension://*,moz-extension://*"`

	StoreDriver    StoreDriver `env:"STORE_DRIVER" envDefault:"sqlite"`
	PostgresqlURL  string      `env:"POSTGRESQL_URL"`
	MigrationsPath string      `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	SqlitePath     string      `env:"SQLITE_PATH" envDefault:"rewatch.db"`

	TimerBackend            TimerBackend `env:"TIMER_BACKEND" envDefault:"local"`
	RabbitmqURL             string       `env:"RABBITMQ_URL"`
	RabbitmqDelayedExchange string       `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"rewatch.timers"`
	RabbitmqTimerQueue      string       `env:"RABBITMQ_TIMER_QUEUE" envDefault:"rewatch.timers.fired"`

	RedisURL string `env:"REDIS_URL"`

	NotificationAppName   string        `env:"NOTIFICATION_APP_NAME" envDefault:"Rewatch"`
	NotificationIcon      string        `env:"NOTIFICATION_ICON"`
	NotificationAutoClear time.Duration `env:"NOTIFICATION_AUTO_CLEAR" envDefault:"10s"`

	SnoozeConfirmationAutoClear time.Duration `env:"SNOOZE_CONFIRMATION_AUTO_CLEAR" envDefault:"3s"`
	HandoffTTL                  time.Duration `env:"HANDOFF_TTL" envDefault:"60s"`
	CleanupPeriod               time.Duration `env:"CLEANUP_PERIOD" envDefault:"60m"`
	CleanupMaxAge               time.Duration `env:"CLEANUP_MAX_AGE" envDefault:"4320h"`

	RateLimitPerMinute uint16 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`

	SentryDSN string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	return LoadWith(env.Options{})
}

// LoadWith parses the environment with the given options, tests pass
// Environment to avoid touching the process environment.
func LoadWith(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg, opts); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("HOST must not be empty")
	}

	switch c.StoreDriver {
	case StoreDriverSqlite:
		if c.SqlitePath == "" {
			return fmt.Errorf("SQLITE_PATH must be set")
		}
	case StoreDriverPostgres:
		if c.PostgresqlURL == "" {
			return fmt.Errorf("POSTGRESQL_URL must be set")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER value: %q", c.StoreDriver)
	}

	switch c.TimerBackend {
	case TimerBackendLocal:
	case TimerBackendRabbitmq:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set")
		}
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set for the rabbitmq timer backend")
		}
	default:
		return fmt.Errorf("invalid TIMER_BACKEND value: %q", c.TimerBackend)
	}

	if c.HandoffTTL <= 0 {
		return fmt.Errorf("HANDOFF_TTL must be positive")
	}
	if c.CleanupPeriod <= 0 {
		return fmt.Errorf("CLEANUP_PERIOD must be positive")
	}
	if c.CleanupMaxAge <= 0 {
		return fmt.Errorf("CLEANUP_MAX_AGE must be positive")
	}
	return nil
}
