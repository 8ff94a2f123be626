package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config gathers everything the server reads from the environment, so main
// stays lean.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string

	Webhook  WebhookConfig
	Reminder ReminderConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// WebhookConfig drives the notification dispatcher. A disabled webhook
// still logs every event; it just never delivers.
type WebhookConfig struct {
	URL            string
	Enabled        bool
	Workers        int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// ReminderConfig drives the reminder sweep.
type ReminderConfig struct {
	Lead   time.Duration
	Window time.Duration
	Period time.Duration
}

// RedisConfig configures the participant-count cache. An empty URL disables
// Redis entirely.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CountTTL     time.Duration
}

// KafkaConfig configures the durable notification queue. No brokers means
// the in-process channel queue.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Group   string
}

// FromEnv builds the config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:          envString("TURNERO_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("TURNERO_DATABASE_URL"),
		JWTSigningKey: envString("TURNERO_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Webhook: WebhookConfig{
			URL:            os.Getenv("TURNERO_WEBHOOK_URL"),
			Enabled:        os.Getenv("TURNERO_WEBHOOK_ENABLED") != "false",
			Workers:        envInt("TURNERO_WEBHOOK_WORKERS", 4),
			MaxAttempts:    envInt("TURNERO_WEBHOOK_MAX_ATTEMPTS", 3),
			InitialBackoff: envDuration("TURNERO_WEBHOOK_INITIAL_BACKOFF", 500*time.Millisecond),
			MaxBackoff:     envDuration("TURNERO_WEBHOOK_MAX_BACKOFF", 30*time.Second),
		},
		Reminder: ReminderConfig{
			Lead:   envDuration("TURNERO_REMINDER_LEAD", 24*time.Hour),
			Window: envDuration("TURNERO_REMINDER_WINDOW", time.Hour),
			Period: envDuration("TURNERO_REMINDER_PERIOD", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("TURNERO_REDIS_URL"),
			PoolSize:     envInt("TURNERO_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("TURNERO_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("TURNERO_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("TURNERO_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("TURNERO_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CountTTL:     envDuration("TURNERO_REDIS_COUNT_TTL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: envList("TURNERO_KAFKA_BROKERS"),
			Topic:   envString("TURNERO_KAFKA_TOPIC", "turnero.notifications"),
			Group:   envString("TURNERO_KAFKA_GROUP", "turnero-dispatcher"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
