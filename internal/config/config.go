// Package config reads the course API settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr    = "127.0.0.1:8989"
	DefaultBaseURL = "http://127.0.0.1:8989"
)

type Config struct {
	Addr            string
	BaseURL         string
	DatasetPath     string
	LogLevel        string
	ProbeRetryCount int
	ProbeRetryDelay time.Duration
	MetricsAddr     string
	RateRPS         float64
	RateBurst       int
	MaxBodyBytes    int64
}

// LoadEnvFiles loads .env and .env.local from the working directory.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds a Config from the environment. Malformed numbers and
// durations are errors rather than silent defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:        getEnv("APP_ADDR", DefaultAddr),
		BaseURL:     getEnv("APP_BASE_URL", DefaultBaseURL),
		DatasetPath: getEnv("DATASET_PATH", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}

	var errs []error
	var err error
	if cfg.ProbeRetryCount, err = getEnvInt("PROBE_RETRY_COUNT", 8); err != nil {
		errs = append(errs, err)
	}
	if cfg.ProbeRetryDelay, err = getEnvDuration("PROBE_RETRY_DELAY", 512*time.Millisecond); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateRPS, err = getEnvFloat("RATE_RPS", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateBurst, err = getEnvInt("RATE_BURST", 20); err != nil {
		errs = append(errs, err)
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("APP_ADDR must not be empty"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("APP_BASE_URL must not be empty"))
	}
	if c.ProbeRetryCount < 1 {
		errs = append(errs, fmt.Errorf("PROBE_RETRY_COUNT must be at least 1, got %d", c.ProbeRetryCount))
	}
	if c.ProbeRetryDelay < 0 {
		errs = append(errs, fmt.Errorf("PROBE_RETRY_DELAY must not be negative, got %s", c.ProbeRetryDelay))
	}
	if c.RateRPS < 0 {
		errs = append(errs, fmt.Errorf("RATE_RPS must not be negative, got %g", c.RateRPS))
	}
	if c.RateRPS > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_BURST must be at least 1 when RATE_RPS is set, got %d", c.RateBurst))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must not be negative, got %d", c.MaxBodyBytes))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}
