// Package app wires the engine packages to their adapters and exposes the
// theorem service to the cmd layer.
package app

import (
	"fmt"
	"log/slog"

	"theoremdex/internal/core/config"
	"theoremdex/internal/core/ports"
	"theoremdex/internal/data/history"
	"theoremdex/internal/data/source"
)

type App struct {
	Config  *config.Config
	Source  ports.DocumentSource
	History ports.HistoryStore

	historyStore *history.Store
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	src, err := source.New(cfg.Scan.Roots, cfg.Scan.Extensions, cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("build document source: %w", err)
	}

	a := &App{Config: cfg, Source: src}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.History = store
		a.historyStore = store
		slog.Debug("history store opened", "path", cfg.History.Path)
	}

	return a, nil
}

func (a *App) Close() error {
	if a.historyStore != nil {
		return a.historyStore.Close()
	}
	return nil
}

func (a *App) TheoremService() ports.TheoremService {
	return NewTheoremService(a)
}
