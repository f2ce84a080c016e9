package index

import (
	"theoremdex/internal/engine/graph"
	"theoremdex/internal/shared/util"
)

// Summary aggregates statistics over one indexed document.
type Summary struct {
	Total           int
	ByKind          map[string]int
	Symbols         []string // sorted unique
	ReferenceCount  int
	DependencyCount int
	OrphanCount     int // blocks with zero dependencies and zero dependents
	Cycles          [][]string
	Metrics         map[string]graph.NodeMetrics
	ComponentCount  int // strongly connected groups of size > 1
}

// Summarize computes aggregate statistics for a built index and its detected
// cycles.
func Summarize(ix *Index, cycles [][]string) Summary {
	s := Summary{
		Total:  len(ix.order),
		ByKind: make(map[string]int, len(ix.Kinds)),
		Cycles: cycles,
	}
	for kind, ids := range ix.Kinds {
		s.ByKind[kind] = len(ids)
	}
	s.Symbols = util.SortedStringKeys(ix.Symbols)

	for _, id := range ix.order {
		b := ix.Blocks[id]
		s.ReferenceCount += len(b.References)
		s.DependencyCount += len(ix.Forward[id])
		if len(ix.Forward[id]) == 0 && len(ix.Reverse[id]) == 0 {
			s.OrphanCount++
		}
	}

	s.Metrics = graph.ComputeMetrics(ix.Forward, ix.order)
	for _, comp := range graph.Components(ix.Forward, ix.order) {
		if len(comp) > 1 {
			s.ComponentCount++
		}
	}
	return s
}
