// Package config builds runtime configuration from environment variables so
// main stays lean. The classification rules themselves live in the rulepack
// document, not here.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures all server-level configuration.
type Config struct {
	Addr          string
	RulepackPath  string
	JWTSigningKey string
	JWTIssuer     string

	Rules    RuleOverrides
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// RuleOverrides tune rulepack constants without editing the pack document.
// Zero values keep the pack's own values.
type RuleOverrides struct {
	MaybePenalty          float64
	FollowUpPenalty       float64
	VerificationThreshold float64
}

// PostgresConfig holds the decision store settings. An empty DSN selects the
// in-memory store.
type PostgresConfig struct {
	DSN string
}

// RedisConfig holds decision cache settings. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DecisionTTL  time.Duration
}

// KafkaConfig holds audit sink settings. Empty brokers select the in-memory
// sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:          getEnv("RISKENGINE_ADDR", ":8080"),
		RulepackPath:  os.Getenv("RISKENGINE_RULEPACK"),
		JWTSigningKey: getEnv("RISKENGINE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getEnv("RISKENGINE_JWT_ISSUER", "riskengine"),
		Postgres: PostgresConfig{
			DSN: os.Getenv("RISKENGINE_POSTGRES_DSN"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("RISKENGINE_REDIS_URL"),
			PoolSize:     getEnvInt("RISKENGINE_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("RISKENGINE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("RISKENGINE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("RISKENGINE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("RISKENGINE_REDIS_WRITE_TIMEOUT", 3*time.Second),
			DecisionTTL:  getEnvDuration("RISKENGINE_DECISION_CACHE_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("RISKENGINE_KAFKA_BROKERS")),
			Topic:   getEnv("RISKENGINE_AUDIT_TOPIC", "riskengine.audit.decisions"),
		},
		Rules: RuleOverrides{
			MaybePenalty:          getEnvFloat("RISKENGINE_MAYBE_PENALTY", 0),
			FollowUpPenalty:       getEnvFloat("RISKENGINE_FOLLOWUP_PENALTY", 0),
			VerificationThreshold: getEnvFloat("RISKENGINE_VERIFICATION_THRESHOLD", 0),
		},
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
