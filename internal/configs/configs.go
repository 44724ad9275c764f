package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppURL                 string
	DatabaseFolder         string
	DatabaseDSN            string
	FrontendURL            string
	LanURL                 string
	ExtraOrigins           []string
	FrontendDist           string
	RateLimit              int
	RedisAddr              string
	RedisRateLimitPrefix   string
	ShutdownTimeoutSeconds int
	LogLevel               string
	LogFormat              string
}

// AllowedOrigins is the CORS allow list: the frontend, the LAN url when
// known, then any extra origins.
func (c Config) AllowedOrigins() []string {
	origins := []string{c.FrontendURL}
	if c.LanURL != "" {
		origins = append(origins, c.LanURL)
	}
	return append(origins, c.ExtraOrigins...)
}

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "0.0.0.0")
	appPort := getEnv("APP_PORT", "8000")

	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 600)
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseFolder:         getEnv("DATABASE_FOLDER", "data"),
		DatabaseDSN:            getEnv("DATABASE_DSN", "data/todos.db"),
		FrontendURL:            getEnv("FRONTEND_URL", "http://localhost:8000"),
		LanURL:                 os.Getenv("LAN_URL"),
		ExtraOrigins:           getEnvAsList("CORS_ALLOWED_ORIGINS"),
		FrontendDist:           getEnv("FRONTEND_DIST", "frontend/dist"),
		RateLimit:              rateLimit,
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisRateLimitPrefix:   getEnv("REDIS_RATE_LIMIT_PREFIX", "todo_rate_limit"),
		ShutdownTimeoutSeconds: shutdownTimeout,
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "json"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	var errs []error
	if cfg.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN must not be empty"))
	}
	if cfg.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL must not be empty"))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0"))
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", key, v)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
