package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duka-data/internal/catalog"
	"duka-data/internal/crawl"
	"duka-data/internal/export"
	"duka-data/internal/provider"
	"duka-data/internal/saver"
	"duka-data/internal/slogx"
	"duka-data/internal/timeframe"
)

// SignalContext is canceled on SIGINT or SIGTERM so running phases can stop gracefully.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// RunDownload fetches every missing hour of every asset from remote into dst.
// Unavailable hours are reported in the run summary; only a canceled context is an error.
func RunDownload(
	ctx context.Context,
	cfg *Config,
	remote provider.HourSource,
	dst provider.HourWriter,
	assets []string,
	hours []time.Time,
	workers int,
	force bool,
) (crawl.Summary, error) {
	if workers <= 0 {
		workers = cfg.Workers()
	}
	slog.Info("download", "assets", len(assets), "hours", len(hours), "workers", workers, "dir", cfg.DownloadDir)
	sum := crawl.RunOneCrawl(ctx, remote, dst, assets, hours, crawl.Options{
		Workers:   workers,
		Force:     force,
		ReportDir: cfg.DownloadDir,
		LogLevel:  slogx.ParseLevel(cfg.LogLevel),
	})
	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("download interrupted: %w", err)
	}
	return sum, nil
}

// RunExport aggregates the stored hours of every asset into bars and saves one file per asset.
func RunExport(
	ctx context.Context,
	cfg *Config,
	src provider.HourSource,
	bs saver.BarSaver,
	assets []string,
	hours []time.Time,
	spec timeframe.Spec,
) ([]export.Result, error) {
	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	slog.Info("export", "assets", len(assets), "hours", len(hours), "timeframe", spec.String(), "format", bs.Extension(), "dir", cfg.ExportDir)
	r := &export.Runner{
		Pipeline: export.Pipeline{Source: src},
		Saver:    bs,
		OutDir:   cfg.ExportDir,
		Workers:  cfg.Workers(),
	}
	return r.Export(ctx, assets, hours, spec)
}

// RunList prints what has been downloaded so far.
func RunList(w io.Writer, cfg *Config, format string) error {
	cov, err := catalog.Scan(cfg.DownloadDir, crawl.LoadProgress(cfg.ProgressPath()))
	if err != nil {
		return err
	}
	return catalog.Render(w, cov, format)
}
