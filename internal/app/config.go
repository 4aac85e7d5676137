package app

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"duka-data/internal/crawl"
)

// EnvPrefix is prepended to every config variable name.
const EnvPrefix = "DUKA_"

// maxWorkers caps the default download concurrency.
const maxWorkers = 32

// Config holds application configuration from env
type Config struct {
	DownloadDir       string        `env:"DOWNLOAD_DIR" envDefault:"./download/" validate:"required"`
	ExportDir         string        `env:"EXPORT_DIR" envDefault:"./export/" validate:"required"`
	BaseURL           string        `env:"BASE_URL" envDefault:"https://datafeed.dukascopy.com/datafeed/" validate:"required,url"`
	SaveFormat        string        `env:"SAVE_FORMAT" envDefault:"csv" validate:"oneof=csv json parquet"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFile           string        `env:"LOG_FILE"`
	Concurrency       int           `env:"CONCURRENCY" envDefault:"0" validate:"gte=0"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND" envDefault:"0" validate:"gte=0"`
	Retries           int           `env:"RETRIES" envDefault:"3" validate:"gte=0"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
}

// LoadConfig reads .env (if present) and the DUKA_* environment, then validates.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.SaveFormat = strings.ToLower(strings.TrimSpace(cfg.SaveFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags and the fields tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid config: %sREQUEST_TIMEOUT must be positive, got %s", EnvPrefix, c.RequestTimeout)
	}
	return nil
}

// Workers returns CONCURRENCY, or min(32, NumCPU+4) when it is 0.
func (c *Config) Workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return min(maxWorkers, runtime.NumCPU()+4)
}

// ProgressPath returns path to .progress.json in the download dir
func (c *Config) ProgressPath() string {
	return crawl.ProgressPath(c.DownloadDir)
}
