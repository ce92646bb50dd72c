package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.JWTIssuer != "riskengine" {
		t.Fatalf("expected default issuer riskengine, got %q", cfg.JWTIssuer)
	}
	if cfg.Redis.DecisionTTL != 24*time.Hour {
		t.Fatalf("expected default decision TTL 24h, got %v", cfg.Redis.DecisionTTL)
	}
	if cfg.Kafka.Topic != "riskengine.audit.decisions" {
		t.Fatalf("expected default audit topic, got %q", cfg.Kafka.Topic)
	}
	if cfg.Rules != (RuleOverrides{}) {
		t.Fatalf("expected empty rule overrides, got %+v", cfg.Rules)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RISKENGINE_ADDR", ":9090")
	t.Setenv("RISKENGINE_KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("RISKENGINE_REDIS_DIAL_TIMEOUT", "250ms")
	t.Setenv("RISKENGINE_MAYBE_PENALTY", "0.2")
	t.Setenv("RISKENGINE_VERIFICATION_THRESHOLD", "0.8")

	cfg := FromEnv()

	if cfg.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %q", cfg.Addr)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "broker-2:9092" {
		t.Fatalf("expected two trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.DialTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms dial timeout, got %v", cfg.Redis.DialTimeout)
	}
	if cfg.Rules.MaybePenalty != 0.2 || cfg.Rules.VerificationThreshold != 0.8 {
		t.Fatalf("expected rule overrides applied, got %+v", cfg.Rules)
	}
}

func TestFromEnvIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("RISKENGINE_REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("RISKENGINE_MAYBE_PENALTY", "lots")

	cfg := FromEnv()

	if cfg.Redis.PoolSize != 10 {
		t.Fatalf("expected fallback pool size 10, got %d", cfg.Redis.PoolSize)
	}
	if cfg.Rules.MaybePenalty != 0 {
		t.Fatalf("expected fallback maybe penalty 0, got %v", cfg.Rules.MaybePenalty)
	}
}
