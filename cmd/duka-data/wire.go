//go:build wireinject
// +build wireinject

package main

import (
	"duka-data/internal/app"

	"github.com/google/wire"
)

// InitializeApp builds App (Config + Store + Remote + Saver) via Wire.
// Caller must call a.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideStore,
		app.ProvideDukascopyClient,
		app.ProvideBarSaver,
		wire.Struct(new(App), "Config", "Store", "Remote", "Saver"),
	)
	return nil, nil
}
