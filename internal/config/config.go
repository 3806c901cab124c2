// Package config loads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Event backends
const (
	EventsLog   = "log"
	EventsKafka = "kafka"
	EventsRedis = "redis"
)

type Config struct {
	Port      int    `env:"PORT,default=8080"`
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=json"`

	SimulatedLatency time.Duration `env:"SIMULATED_LATENCY,default=800ms"`
	MarketSchedule   string        `env:"MARKET_SCHEDULE,default=@every 30s"`

	AssistantAPIKey   string        `env:"ASSISTANT_API_KEY"`
	AssistantModel    string        `env:"ASSISTANT_MODEL,default=gemini-2.5-flash"`
	AssistantEndpoint string        `env:"ASSISTANT_ENDPOINT,default=https://generativelanguage.googleapis.com/v1beta"`
	AssistantTimeout  time.Duration `env:"ASSISTANT_TIMEOUT,default=15s"`
	AssistantRate     float64       `env:"ASSISTANT_RATE,default=0.2"`
	AssistantBurst    int           `env:"ASSISTANT_BURST,default=3"`

	EventsBackend string `env:"EVENTS_BACKEND,default=log"`
	KafkaBrokers  string `env:"KAFKA_BROKERS,default=localhost:9092"`
	KafkaTopic    string `env:"KAFKA_TOPIC,default=lobus.ledger.events"`
	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisStream   string `env:"REDIS_STREAM,default=lobus:ledger:events"`
	RedisMaxLen   int64  `env:"REDIS_STREAM_MAXLEN,default=10000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Load reads an optional .env file and decodes the environment
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.SimulatedLatency < 0 {
		return fmt.Errorf("SIMULATED_LATENCY must not be negative")
	}
	switch c.EventsBackend {
	case EventsLog, EventsKafka, EventsRedis:
	default:
		return fmt.Errorf("unknown EVENTS_BACKEND %q", c.EventsBackend)
	}
	if c.EventsBackend == EventsKafka && len(c.Brokers()) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required for the kafka backend")
	}
	if c.AssistantRate <= 0 || c.AssistantBurst <= 0 {
		return fmt.Errorf("assistant rate and burst must be positive")
	}
	return nil
}

// Brokers splits KAFKA_BROKERS on commas
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
