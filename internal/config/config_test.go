package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/require"
)

func load(vars map[string]string) (*Config, error) {
	return LoadWith(env.Options{Environment: vars})
}

func TestDefaults(t *testing.T) {
	cfg, err := load(map[string]string{})
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Host)
	require.Equal(t, uint16(8030), cfg.Port)
	require.Equal(t, StoreDriverSqlite, cfg.StoreDriver)
	require.Equal(t, TimerBackendLocal, cfg.TimerBackend)
	require.Equal(t, 60*time.Second, cfg.HandoffTTL)
	require.Equal(t, 10*time.Second, cfg.NotificationAutoClear)
	require.Equal(t, 3*time.Second, cfg.SnoozeConfirmationAutoClear)
	require.Equal(t, time.Hour, cfg.CleanupPeriod)
	require.Equal(t, 180*24*time.Hour, cfg.CleanupMaxAge)
	require.Equal(t, uint16(30), cfg.RateLimitPerMinute)
	require.Equal(t, []string{"chrome-extension://*", "moz-extension://*"}, cfg.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	cfg, err := load(map[string]string{
		"HOST":            "0.0.0.0",
		"PORT":            "9000",
		"STORE_DRIVER":    "postgres",
		"POSTGRESQL_URL":  "postgres://localhost/rewatch",
		"TIMER_BACKEND":   "rabbitmq",
		"RABBITMQ_URL":    "amqp://localhost",
		"REDIS_URL":       "redis://localhost:6379/0",
		"HANDOFF_TTL":     "2m",
		"ALLOWED_ORIGINS": "http://a,http://b",
	})
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Host)
	require.Equal(t, uint16(9000), cfg.Port)
	require.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	require.Equal(t, TimerBackendRabbitmq, cfg.TimerBackend)
	require.Equal(t, 2*time.Minute, cfg.HandoffTTL)
	require.Equal(t, []string{"http://a", "http://b"}, cfg.AllowedOrigins)
}

func TestInvalid(t *testing.T) {
	cases := []struct {
		id   string
		vars map[string]string
	}{
		{id: "unknown store driver", vars: map[string]string{"STORE_DRIVER": "mongo"}},
		{id: "postgres without url", vars: map[string]string{"STORE_DRIVER": "postgres"}},
		{id: "unknown timer backend", vars: map[string]string{"TIMER_BACKEND": "cron"}},
		{
			id:   "rabbitmq without redis",
			vars: map[string]string{"TIMER_BACKEND": "rabbitmq", "RABBITMQ_URL": "amqp://localhost"},
		},
		{id: "rabbitmq without url", vars: map[string]string{"TIMER_BACKEND": "rabbitmq"}},
		{id: "bad duration", vars: map[string]string{"HANDOFF_TTL": "soon"}},
		{id: "zero ttl", vars: map[string]string{"HANDOFF_TTL": "0s"}},
		{id: "bad port", vars: map[string]string{"PORT": "http"}},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := load(testcase.vars)
			require.Error(t, err)
		})
	}
}
