package app

import (
	"fmt"

	"duka-data/internal/provider/dukascopy"
	"duka-data/internal/saver"
	"duka-data/internal/store"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideBarSaver creates BarSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideBarSaver(cfg *Config) (saver.BarSaver, error) {
	bs := saver.NewBarSaver(cfg.SaveFormat)
	if bs == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return bs, nil
}

// ProvideStore opens the download dir as hour store (for Wire).
func ProvideStore(cfg *Config) *store.Store {
	return store.New(cfg.DownloadDir)
}

// ProvideDukascopyClient creates the remote fetcher (for Wire).
// Caller must call Close() when shutting down.
func ProvideDukascopyClient(cfg *Config) *dukascopy.Client {
	return dukascopy.NewClient(dukascopy.Options{
		BaseURL:           cfg.BaseURL,
		Workers:           cfg.Workers(),
		Retries:           cfg.Retries,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}
