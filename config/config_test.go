package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg := Load()

	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "8000", cfg.AppPort)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "news_app", cfg.DBName)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PREFIX", "/v1")
	t.Setenv("DEBUG", "true")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_EXPIRE_DAYS", "30")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://news.example.com,")

	cfg := Load()

	assert.Equal(t, "/v1", cfg.APIPrefix)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://news.example.com"}, cfg.AllowedOrigins)
}

func TestLoadBadInteger(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "soon")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}
