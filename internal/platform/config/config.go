package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Server
	Addr string `env:"ONYX_ADDR" envDefault:":8080"`

	// Trust registry allowlist
	RegistryConfigPath string `env:"TRUST_REGISTRY_CONFIG" envDefault:"config/trust_registry.yaml"`

	// Postgres (optional; registry falls back to the YAML/builtin allowlist)
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis verdict store (optional; memory store when unset)
	RedisAddr string `env:"REDIS_ADDR"`

	// Verdict retention in the recall store
	VerdictTTLSeconds int `env:"VERDICT_TTL_SECONDS" envDefault:"86400"`

	// Kafka audit emission (optional; envelopes are still returned inline)
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_AUDIT_TOPIC" envDefault:"ocn.onyx.audit"`

	// LLM explainer (optional; deterministic template when unconfigured)
	LLMEndpoint   string `env:"AZURE_OPENAI_ENDPOINT"`
	LLMAPIKey     string `env:"AZURE_OPENAI_API_KEY"`
	LLMDeployment string `env:"AZURE_OPENAI_DEPLOYMENT_NAME" envDefault:"onyx-llm"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// KafkaEnabled reports whether audit events should be forwarded to Kafka.
func (c *Config) KafkaEnabled() bool {
	return c.KafkaBrokers != ""
}

// LLMConfigured reports whether the external explainer collaborator is set up.
func (c *Config) LLMConfigured() bool {
	return c.LLMEndpoint != "" && c.LLMAPIKey != "" && c.LLMDeployment != ""
}
