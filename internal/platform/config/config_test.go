package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "commits.md", cfg.GitHub.FilePath)
	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIBaseURL)
	assert.Equal(t, "data/commits.md", cfg.LocalLogPath)
	assert.Equal(t, 10, cfg.ApproveRateLimit)
	assert.Equal(t, time.Minute, cfg.ApproveRateWindow)
	assert.Equal(t, "taproom.audit", cfg.Kafka.AuditTopic)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TAPROOM_ADDR", ":9999")
	t.Setenv("ADMIN_SECRET", "cerveza-fría")
	t.Setenv("GITHUB_OWNER", "brewery")
	t.Setenv("GITHUB_REPO", "guestbook")
	t.Setenv("GITHUB_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "cerveza-fría", cfg.AdminSecret)
	assert.Equal(t, "brewery", cfg.GitHub.Owner)
	assert.Equal(t, "guestbook", cfg.GitHub.Repo)
	assert.Equal(t, 3*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.Kafka.Brokers)
}
