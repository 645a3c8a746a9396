package config

import (
	"os"
	"strconv"
	"time"
)

// Default token lifetimes, overridable via environment.
const (
	DefaultAccessTokenTTL  = 600 * time.Second
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env             string
	ServerPort      string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/store?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		AccessTokenTTL:  getEnvSeconds("ACCESS_TOKEN_TTL", DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvSeconds("REFRESH_TOKEN_TTL", DefaultRefreshTokenTTL),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether internal diagnostics should be withheld
// from error responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvSeconds reads an integer number of seconds.
func getEnvSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return def
}
