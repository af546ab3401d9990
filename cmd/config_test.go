package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 30*time.Second, cfg.CycleLockTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Zero(t, cfg.RandomSeed)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("DB_NAME", "orders")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Contains(t, cfg.DSN(), "dbname=orders")
}

func TestLoadConfig_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MOVE_SCHEDULE=@every 5s\n"), 0o600))
	t.Setenv("MOVE_SCHEDULE", "@every 3s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "@every 3s", cfg.MoveSchedule)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("RANDOM_SEED", "minus one")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "RANDOM_SEED")
}
