package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures process-level configuration for the closure service.
type Config struct {
	Addr          string
	DatabaseURL   string
	Redis         RedisConfig
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string

	// RetentionPeriod is the window archived data survives after closure
	// before the sweeper purges it.
	RetentionPeriod time.Duration

	// PreviewCacheTTL bounds staleness of cached closure previews. Initiate
	// never reads the cache.
	PreviewCacheTTL time.Duration

	// SweepInterval is how often the expiry sweeper looks for archives past
	// their retention window.
	SweepInterval time.Duration
}

// RedisConfig holds Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("WORKHIVE_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuditTopic:      envOr("AUDIT_TOPIC", "workhive.closure.audit"),
		JWTSigningKey:   os.Getenv("JWT_SIGNING_KEY"),
		RetentionPeriod: time.Duration(envInt("CLOSURE_RETENTION_DAYS", 30)) * 24 * time.Hour,
		PreviewCacheTTL: envDuration("CLOSURE_PREVIEW_CACHE_TTL", 30*time.Second),
		SweepInterval:   envDuration("CLOSURE_SWEEP_INTERVAL", time.Hour),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
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
