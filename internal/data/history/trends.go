package history

import "time"

// ComputeTrend compares the first and last snapshot in the window. Fewer
// than two snapshots yields no report.
func ComputeTrend(projectKey string, snapshots []Snapshot, since time.Time) *TrendReport {
	window := make([]Snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if !since.IsZero() && s.Timestamp.Before(since) {
			continue
		}
		window = append(window, s)
	}
	if len(window) < 2 {
		return nil
	}

	first := window[0]
	last := window[len(window)-1]
	return &TrendReport{
		ProjectKey:         projectKey,
		SnapshotsEvaluated: len(window),
		From:               first.Timestamp,
		To:                 last.Timestamp,
		BlockDelta:         last.BlockCount - first.BlockCount,
		CycleDelta:         last.CycleCount - first.CycleCount,
		DependencyDelta:    last.DependencyCount - first.DependencyCount,
		OrphanDelta:        last.OrphanCount - first.OrphanCount,
	}
}
