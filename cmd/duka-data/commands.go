package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/subcommands"

	"duka-data/internal/app"
	"duka-data/internal/saver"
	"duka-data/internal/timeframe"
)

func appFrom(args []interface{}) *App {
	if len(args) == 0 {
		return nil
	}
	a, _ := args[0].(*App)
	return a
}

// splitAssetsStart splits "ASSET... START" positional arguments.
// Assets from assetsFile are appended after the positional ones.
func splitAssetsStart(args []string, assetsFile string) ([]string, string, error) {
	if len(args) == 0 {
		return nil, "", fmt.Errorf("missing start date")
	}
	named := args[:len(args)-1]
	if assetsFile != "" {
		fromFile, err := app.LoadAssetsFile(assetsFile)
		if err != nil {
			return nil, "", err
		}
		named = append(append([]string{}, named...), fromFile...)
	}
	assets := app.NormalizeAssets(named)
	if len(assets) == 0 {
		return nil, "", fmt.Errorf("no assets given")
	}
	if err := app.ValidateAssets(assets); err != nil {
		return nil, "", err
	}
	return assets, args[len(args)-1], nil
}

type downloadCmd struct {
	end        string
	concurrent int
	force      bool
	assetsFile string
}

func (*downloadCmd) Name() string     { return "download" }
func (*downloadCmd) Synopsis() string { return "download hourly tick files for assets" }
func (*downloadCmd) Usage() string {
	return `download [-end YYYY-MM-DD] [-concurrent N] [-force] [-assets-file FILE] ASSET... START
  Download every hour from START 00:00 up to END 00:00 (default: one hour ago).
  Eg. download EURUSD AUDUSD 2024-01-08
`
}

func (c *downloadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.end, "end", "", "end date in YYYY-MM-DD format; empty downloads up to now")
	f.IntVar(&c.concurrent, "concurrent", 0, "parallel downloads; 0 uses DUKA_CONCURRENCY")
	f.BoolVar(&c.force, "force", false, "re-download hours already on disk")
	f.StringVar(&c.assetsFile, "assets-file", "", "read more assets from a .txt, .json or .yaml file")
}

func (c *downloadCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	assets, start, err := splitAssetsStart(f.Args(), c.assetsFile)
	if err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		slog.Error("download", "error", err)
		return subcommands.ExitUsageError
	}
	hours, err := app.ResolveHours(start, c.end, time.Now())
	if err != nil {
		slog.Error("download", "error", err)
		return subcommands.ExitUsageError
	}
	sum, err := app.RunDownload(ctx, a.Config, a.Remote, a.Store, assets, hours, c.concurrent, c.force)
	if err != nil {
		slog.Error("download", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("download finished", "run_id", sum.RunID, "success", sum.Success, "failed", sum.Failed, "skipped", sum.Skipped)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	timeframe  string
	end        string
	format     string
	assetsFile string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "aggregate downloaded ticks into OHLCV bars" }
func (*exportCmd) Usage() string {
	return `export [-timeframe 15m] [-end YYYY-MM-DD] [-format csv|json|parquet] [-assets-file FILE] ASSET... START
  Timeframes: <N>t ticks, <N>s, <N>m, <N>h, <N>D, <N>W. Eg. export -timeframe 1h EURUSD 2024-01-08
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "timeframe", "15m", "bar width, eg. 100t, 30s, 15m, 4h, 1D, 1W")
	f.StringVar(&c.end, "end", "", "end date in YYYY-MM-DD format; empty exports up to now")
	f.StringVar(&c.format, "format", "", "output format; empty uses DUKA_SAVE_FORMAT")
	f.StringVar(&c.assetsFile, "assets-file", "", "read more assets from a .txt, .json or .yaml file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	spec, err := timeframe.Parse(c.timeframe)
	if err != nil {
		slog.Error("export", "timeframe", c.timeframe, "error", err)
		return subcommands.ExitUsageError
	}
	assets, start, err := splitAssetsStart(f.Args(), c.assetsFile)
	if err != nil {
		fmt.Fprint(os.Stderr, c.Usage())
		slog.Error("export", "error", err)
		return subcommands.ExitUsageError
	}
	hours, err := app.ResolveHours(start, c.end, time.Now())
	if err != nil {
		slog.Error("export", "error", err)
		return subcommands.ExitUsageError
	}
	bs := a.Saver
	if c.format != "" {
		if bs = saver.NewBarSaver(c.format); bs == nil {
			slog.Error("export", "error", fmt.Errorf("unsupported format %q (use: csv, parquet, json)", c.format))
			return subcommands.ExitUsageError
		}
	}
	results, err := app.RunExport(ctx, a.Config, a.Store, bs, assets, hours, spec)
	for _, r := range results {
		if r.Err == nil && r.Path != "" {
			fmt.Println(r.Path)
		}
	}
	if err != nil {
		slog.Error("export", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type listCmd struct {
	format string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list downloaded assets and date ranges" }
func (*listCmd) Usage() string {
	return `list [-format table|json|yaml]
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "table", "output format: table, json or yaml")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	a := appFrom(args)
	if err := app.RunList(os.Stdout, a.Config, c.format); err != nil {
		slog.Error("list", "error", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
