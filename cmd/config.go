package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisURL enables the cross-instance cycle lock when set.
	RedisURL     string
	CycleLockTTL time.Duration

	// KafkaBrokers enables publishing order status changes when set. Otherwise
	// the events are only logged.
	KafkaBrokers           []string
	KafkaOrderChangedTopic string

	AssignSchedule string
	MoveSchedule   string
	LogLevel       slog.Level

	// RandomSeed seeds the generator for order and courier locations. Zero seeds
	// from the clock.
	RandomSeed uint64
}

// LoadConfig reads .env (if present) into the process environment once and
// builds the Config from it.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := Config{
		HTTPPort:               env("HTTP_PORT", "8082"),
		DBHost:                 env("DB_HOST", "localhost"),
		DBPort:                 env("DB_PORT", "5432"),
		DBUser:                 env("DB_USER", "postgres"),
		DBPassword:             env("DB_PASSWORD", ""),
		DBName:                 env("DB_NAME", "dispatch"),
		DBSslMode:              env("DB_SSLMODE", "disable"),
		RedisURL:               env("REDIS_URL", ""),
		KafkaOrderChangedTopic: env("KAFKA_ORDER_CHANGED_TOPIC", "order.status.changed"),
		AssignSchedule:         env("ASSIGN_SCHEDULE", "@every 1s"),
		MoveSchedule:           env("MOVE_SCHEDULE", "@every 2s"),
	}

	if brokers := env("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	ttl, err := time.ParseDuration(env("CYCLE_LOCK_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("CYCLE_LOCK_TTL: %w", err)
	}
	cfg.CycleLockTTL = ttl

	if err = cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if seed := env("RANDOM_SEED", ""); seed != "" {
		if cfg.RandomSeed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return Config{}, fmt.Errorf("RANDOM_SEED: %w", err)
		}
	}

	return cfg, nil
}

// DSN is the Postgres connection string for both GORM and goose.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
