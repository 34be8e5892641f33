package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MONGODB_URI", "MONGO_URI", "REDIS_URI", "JWT_SECRET", "TOKEN_TTL",
		"PORT", "ALLOWED_ORIGINS", "ENV", "LOG_LEVEL", "LOG_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/blog", cfg.MongoURI)
	assert.Empty(t, cfg.RedisURI)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017/myblog")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("ALLOWED_ORIGINS", "https://blog.example.com, https://www.example.com")
	t.Setenv("ENV", "Production")

	cfg := Load()

	assert.Equal(t, "mongodb://db:27017/myblog", cfg.MongoURI)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://blog.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestTokenTTLParsing(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"duration string", "12h", 12 * time.Hour},
		{"plain hours", "48", 48 * time.Hour},
		{"invalid falls back", "soon", 7 * 24 * time.Hour},
		{"negative falls back", "-1h", 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_TTL", tt.value)
			assert.Equal(t, tt.want, Load().TokenTTL)
		})
	}
}
