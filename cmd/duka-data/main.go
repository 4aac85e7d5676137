package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"duka-data/internal/app"
	"duka-data/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&downloadCmd{}, "data")
	subcommands.Register(&exportCmd{}, "data")
	subcommands.Register(&listCmd{}, "data")
	flag.Parse()

	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	app.SetupLogger(a.Config)

	ctx, stop := app.SignalContext(context.Background())
	status := subcommands.Execute(ctx, a)
	stop()
	if err := a.Close(); err != nil {
		slog.Warn("close remote", "error", err)
	}
	os.Exit(int(status))
}
