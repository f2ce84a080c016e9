package app

import (
	"context"
	"fmt"
	"log/slog"

	"theoremdex/internal/core/ports"
	"theoremdex/internal/core/watcher"
	"theoremdex/internal/data/source"
	"theoremdex/internal/shared/util"
)

// StartWatcher reindexes documents as they change on disk and hands each
// result to onResult. Rescans are rate limited so editor save storms do not
// thrash the engine. Close the returned watcher to stop.
func (a *App) StartWatcher(ctx context.Context, onResult func(ports.IndexResult)) (*watcher.Watcher, error) {
	svc := a.TheoremService()
	limiter := util.NewLimiter(a.Config.Watch.RescansPerSec, a.Config.Watch.RescanBurst)

	accepter, ok := a.Source.(*source.FSSource)
	if !ok {
		return nil, fmt.Errorf("watch mode requires a filesystem document source")
	}

	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		accepter,
		func(paths []string) {
			for _, path := range paths {
				if err := limiter.Wait(ctx, 1); err != nil {
					return
				}
				res, err := svc.IndexDocument(ctx, ports.IndexRequest{DocumentID: path})
				if err != nil {
					slog.Warn("reindex failed", "document", path, "error", err)
					continue
				}
				if onResult != nil {
					onResult(res)
				}
			}
		},
	)
	if err != nil {
		return nil, err
	}

	if err := w.Watch(a.Config.Scan.Roots); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
