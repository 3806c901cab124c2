package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "SIMULATED_LATENCY", "MARKET_SCHEDULE",
	"ASSISTANT_API_KEY", "ASSISTANT_MODEL", "ASSISTANT_ENDPOINT", "ASSISTANT_TIMEOUT",
	"ASSISTANT_RATE", "ASSISTANT_BURST", "EVENTS_BACKEND", "KAFKA_BROKERS",
	"KAFKA_TOPIC", "REDIS_ADDR", "REDIS_STREAM", "REDIS_STREAM_MAXLEN", "SHUTDOWN_TIMEOUT",
}

// clearEnv unsets every key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 800*time.Millisecond, cfg.SimulatedLatency)
	assert.Equal(t, "@every 30s", cfg.MarketSchedule)
	assert.Equal(t, EventsLog, cfg.EventsBackend)
	assert.Empty(t, cfg.AssistantAPIKey)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nEVENTS_BACKEND=kafka\nKAFKA_BROKERS=k1:9092, k2:9092\nSIMULATED_LATENCY=0s\nASSISTANT_API_KEY=secret\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, EventsKafka, cfg.EventsBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers())
	assert.Zero(t, cfg.SimulatedLatency)
	assert.Equal(t, "secret", cfg.AssistantAPIKey)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, EventsBackend: EventsLog, KafkaBrokers: "k:9092", AssistantRate: 1, AssistantBurst: 1}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"bad port", func(c *Config) { c.Port = 0 }, false},
		{"negative latency", func(c *Config) { c.SimulatedLatency = -time.Second }, false},
		{"unknown backend", func(c *Config) { c.EventsBackend = "nats" }, false},
		{"kafka without brokers", func(c *Config) { c.EventsBackend = EventsKafka; c.KafkaBrokers = " , " }, false},
		{"redis backend", func(c *Config) { c.EventsBackend = EventsRedis }, true},
		{"zero rate", func(c *Config) { c.AssistantRate = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
