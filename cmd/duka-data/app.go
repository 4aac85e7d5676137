package main

import (
	"duka-data/internal/app"
	"duka-data/internal/provider/dukascopy"
	"duka-data/internal/saver"
	"duka-data/internal/store"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *app.Config
	Store  *store.Store
	Remote *dukascopy.Client
	Saver  saver.BarSaver
}

// Close releases the remote client.
func (a *App) Close() error {
	return a.Remote.Close()
}
