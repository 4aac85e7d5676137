// Package export turns stored hour files into bar files: fetch, decompress,
// assemble, aggregate and save, one asset at a time.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"duka-data/internal/aggregate"
	"duka-data/internal/bi5"
	"duka-data/internal/model"
	"duka-data/internal/provider"
	"duka-data/internal/saver"
	"duka-data/internal/stream"
	"duka-data/internal/timeframe"
)

// Load fetches every hour from src and decompresses the present, non-empty ones.
// A decompression failure aborts the load; unavailable hours are kept as absent.
func Load(ctx context.Context, src provider.HourSource, asset string, hours []time.Time) ([]stream.Hour, error) {
	out := make([]stream.Hour, 0, len(hours))
	for _, h := range hours {
		raw, ok, err := src.Fetch(ctx, asset, h)
		if err != nil {
			return nil, fmt.Errorf("fetch %s %s: %w", asset, h.UTC().Format("2006-01-02T15"), err)
		}
		if !ok {
			out = append(out, stream.Hour{Time: h})
			continue
		}
		payload, err := bi5.Decompress(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", asset, h.UTC().Format("2006-01-02T15"), err)
		}
		out = append(out, stream.Hour{Time: h, Payload: payload, Present: true})
	}
	return out, nil
}

// Pipeline turns one asset's hours into bars.
type Pipeline struct {
	Source provider.HourSource
}

// Run loads, assembles and aggregates. Either every bar is returned or an error.
func (p Pipeline) Run(ctx context.Context, asset string, hours []time.Time, spec timeframe.Spec) ([]model.Bar, error) {
	loaded, err := Load(ctx, p.Source, asset, hours)
	if err != nil {
		return nil, err
	}
	ticks, err := stream.Assemble(loaded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", asset, err)
	}
	return aggregate.Aggregate(ticks, spec), nil
}

// Runner exports several assets in parallel. Assets share nothing but the source and saver.
type Runner struct {
	Pipeline Pipeline
	Saver    saver.BarSaver
	OutDir   string
	Workers  int
}

// Result is the outcome for one asset.
type Result struct {
	Asset string
	Path  string
	Bars  int
	Err   error
}

// FileName is the output name of one asset export.
func FileName(asset string, from, to time.Time, spec timeframe.Spec, ext string) string {
	return fmt.Sprintf("%s_%s_to_%s_%s.%s", asset, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"), spec, ext)
}

// Export writes one file per asset under OutDir/{ASSET}/. A failing asset does not stop
// the others; its error is reported in its Result and joined into the returned error.
func (r *Runner) Export(ctx context.Context, assets []string, hours []time.Time, spec timeframe.Spec) ([]Result, error) {
	if len(hours) == 0 {
		return nil, errors.New("export: empty hour range")
	}
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(assets))
	var mu sync.Mutex
	var errs []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			res := r.exportOne(gctx, asset, hours, spec)
			results[i] = res
			if res.Err != nil {
				slog.Error("export fail", "asset", asset, "error", res.Err)
				mu.Lock()
				errs = append(errs, res.Err)
				mu.Unlock()
				return nil
			}
			slog.Info("export ok", "asset", asset, "bars", res.Bars, "path", res.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}

func (r *Runner) exportOne(ctx context.Context, asset string, hours []time.Time, spec timeframe.Spec) Result {
	res := Result{Asset: asset}
	bars, err := r.Pipeline.Run(ctx, asset, hours, spec)
	if err != nil {
		res.Err = err
		return res
	}
	dir := filepath.Join(r.OutDir, asset)
	if err := os.MkdirAll(dir, 0755); err != nil {
		res.Err = fmt.Errorf("create folder %s: %w", dir, err)
		return res
	}
	res.Path = filepath.Join(dir, FileName(asset, hours[0], hours[len(hours)-1], spec, r.Saver.Extension()))
	if err := r.Saver.Save(bars, res.Path); err != nil {
		res.Err = fmt.Errorf("save %s: %w", res.Path, err)
		return res
	}
	res.Bars = len(bars)
	return res
}
