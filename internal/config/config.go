package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	MongoURI            string
	RedisURI            string // optional; empty disables the post list cache
	JWTSecret           string
	TokenTTL            time.Duration
	Port                string
	AllowedOrigins      []string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	LogLevel            string
	LogPath             string // optional rolling log file; empty logs to stdout only
	Environment         string
}

func Load() *Config {
	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/blog")),
		RedisURI:            getEnv("REDIS_URI", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            getDuration("TOKEN_TTL", 7*24*time.Hour),
		Port:                getEnv("PORT", "8080"),
		AllowedOrigins:      parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogPath:             getEnv("LOG_PATH", ""),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	// Also accept a plain number of hours, e.g. TOKEN_TTL=168
	if h, err := strconv.Atoi(value); err == nil && h > 0 {
		return time.Duration(h) * time.Hour
	}
	return defaultValue
}
