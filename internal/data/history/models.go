package history

import "time"

const SchemaVersion = 1

// Snapshot captures the aggregate shape of one indexed document at one point
// in time.
type Snapshot struct {
	ProjectKey    string
	SchemaVersion int
	RunID         string
	Timestamp     time.Time
	Document      string

	BlockCount      int
	ReferenceCount  int
	DependencyCount int
	OrphanCount     int
	CycleCount      int
	SymbolCount     int
}

// TrendReport describes how a document's index evolved across a window of
// snapshots.
type TrendReport struct {
	ProjectKey         string
	SnapshotsEvaluated int
	From               time.Time
	To                 time.Time

	BlockDelta      int
	CycleDelta      int
	DependencyDelta int
	OrphanDelta     int
}
