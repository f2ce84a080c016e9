package app

import (
	"fmt"
	"time"

	"theoremdex/internal/data/history"
)

// Trend summarizes how the project's index evolved since the given time.
func (a *App) Trend(since time.Time) (*history.TrendReport, error) {
	if a.History == nil {
		return nil, fmt.Errorf("history is not enabled")
	}
	key := a.Config.History.ProjectKey
	snapshots, err := a.History.LoadSnapshots(key, since)
	if err != nil {
		return nil, fmt.Errorf("load snapshots for %q: %w", key, err)
	}
	return history.ComputeTrend(key, snapshots, since), nil
}
