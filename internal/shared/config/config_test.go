package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SETTLEMENT_CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bet_settled", cfg.TopicBetSettled)
	assert.Equal(t, 60*time.Second, cfg.Feeds.ScoresTTL)
	assert.Equal(t, time.Hour, cfg.Feeds.StatsTTL)
	assert.Equal(t, 3, cfg.Feeds.DaysFrom)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settlement.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
feeds:
  scores_base_url: http://scores.local
  scores_ttl: 30s
  rate_per_sec: 0.5
settlement:
  workers: 8
`), 0o600))

	t.Setenv("SETTLEMENT_CONFIG_FILE", path)
	t.Setenv("SETTLEMENT_WORKERS", "2")
	t.Setenv("STATS_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://scores.local", cfg.Feeds.ScoresBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Feeds.ScoresTTL)
	assert.Equal(t, 0.5, cfg.Feeds.RatePerSec)
	assert.Equal(t, time.Hour, cfg.Feeds.StatsTTL)
	assert.Equal(t, 2, cfg.Settlement.Workers)
	assert.Equal(t, "secret", cfg.Feeds.StatsAPIKey)
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("SETTLEMENT_CONFIG_FILE", "")
	t.Setenv("SCORES_CACHE_TTL", "sixty")
	t.Setenv("REDIS_DB", "x")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORES_CACHE_TTL")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("SETTLEMENT_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsZeroWorkers(t *testing.T) {
	t.Setenv("SETTLEMENT_CONFIG_FILE", "")
	t.Setenv("SETTLEMENT_WORKERS", "0")
	_, err := Load()
	assert.Error(t, err)
}
