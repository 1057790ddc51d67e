package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PostgresURL string

	NATSURL         string
	NATSConnTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ClickHouseDSN      string
	ClickHouseDatabase string
	ClickHouseUsername string
	ClickHousePassword string

	OTLPCollectorURL string

	JWTSecret       string
	SessionTTL      time.Duration
	AdminEmail      string
	SeedOnEmpty     bool
	RefreshInterval time.Duration

	// Client-local validation policy defaults. Held in memory only and
	// mutable at runtime through the admin config tab; never persisted.
	JobValidationPolicy     string
	TrustedEmployerMinLevel int
}

func LoadConfig() (*Config, error) {
	config := &Config{
		PostgresURL: getEnvString("DATABASE_URL", "postgres://localhost:5432/facultyjobs"),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		ClickHouseDSN:      getEnvString("CLICKHOUSE_DSN", ""),
		ClickHouseDatabase: getEnvString("CLICKHOUSE_DATABASE", "facultyjobs"),
		ClickHouseUsername: getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword: getEnvString("CLICKHOUSE_PASSWORD", ""),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", "localhost:4317"),

		JWTSecret:       getEnvString("JWT_SECRET", "dev-only-secret"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		AdminEmail:      getEnvString("ADMIN_EMAIL", "admin@facultyjobs.com"),
		SeedOnEmpty:     getEnvBool("SEED_ON_EMPTY", true),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", time.Minute),

		JobValidationPolicy:     getEnvString("JOB_VALIDATION_POLICY", "ADMIN_APPROVAL"),
		TrustedEmployerMinLevel: getEnvInt("TRUSTED_EMPLOYER_MIN_LEVEL", 2),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
