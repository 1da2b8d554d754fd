package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a@x.io", "B@y.io"}, SplitList(" a@x.io, ,B@y.io ,"))
	assert.Nil(t, SplitList(""))
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL_TEST", "postgres://test")
	t.Setenv("ADMIN_EMAILS", "admin@vibemarket.tech,ops@vibemarket.tech")
	t.Setenv("SITE_BASE_URL", "https://example.com/")
	t.Setenv("FEED_CACHE_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "postgres://test", cfg.DatabaseURL)
	assert.Equal(t, []string{"admin@vibemarket.tech", "ops@vibemarket.tech"}, cfg.AdminEmails)
	assert.Equal(t, "https://example.com", cfg.SiteBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.FeedCacheTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "vibe-logos", cfg.LogoBucket)
}
