// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DB DBConfig

	JWTSecret    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	CORSOrigins []string

	SeedAdminEmail    string
	SeedAdminPassword string

	RabbitMQURL string

	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// DBConfig describes the MySQL connection and pool.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool { return c.Env == "production" }

// LoadDotEnv reads .env files into the environment.  Missing files are
// ignored; variables already set win.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Load reads the environment.  Every missing required variable is listed
// in the returned error.
func Load() (Config, error) {
	var missing []string
	must := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		Env:      getenv("APP_ENV", "development"),
		Port:     getenv("PORT", "5000"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:            must("DB_HOST"),
			Port:            getenv("DB_PORT", "3306"),
			User:            must("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            must("DB_NAME"),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		JWTSecret:         must("JWT_SECRET"),
		BcryptCost:        envInt("BCRYPT_COST", 12),
		CORSOrigins:       splitList(getenv("CORS_ORIGIN", "http://localhost:5173")),
		SeedAdminEmail:    getenv("SEED_ADMIN_EMAIL", "admin@trialvo.com"),
		SeedAdminPassword: getenv("SEED_ADMIN_PASSWORD", "admin123"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		Redis:             LoadRedisConfig(),
		Cache:             LoadCacheConfig(),
		RateLimit:         LoadRateLimitConfig(),
	}

	ttl, err := ParseTTL(getenv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = ttl

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if cfg.DB.MaxOpenConns < 1 {
		return Config{}, errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	if cfg.DB.MaxIdleConns > cfg.DB.MaxOpenConns {
		cfg.DB.MaxIdleConns = cfg.DB.MaxOpenConns
	}
	return cfg, nil
}

// ParseTTL accepts Go durations ("12h", "90m") and whole days ("7d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "":
		return d
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return dur
	}
	return d
}
