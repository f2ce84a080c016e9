// Package index aggregates enriched blocks into lookup tables and a directed
// dependency graph.
package index

import (
	"context"

	"theoremdex/internal/core/errors"
	"theoremdex/internal/engine/scanner"
)

// Index holds every lookup table for one document pass. Forward and Reverse
// carry an entry for every identifier, defaulting to empty slices, so graph
// consumers never see an absent key.
type Index struct {
	Labels  map[string]string         // label -> identifier
	Blocks  map[string]*scanner.Block // identifier -> block
	Kinds   map[string][]string       // kind -> identifiers
	Symbols map[string][]string       // symbol -> identifiers
	Forward map[string][]string       // identifier -> identifiers it references
	Reverse map[string][]string       // identifier -> identifiers referencing it

	order []string // identifiers in document (insertion) order
}

// IDs returns the identifiers in insertion order. Cycle detection iterates
// this order so results are stable across runs on identical text.
func (ix *Index) IDs() []string {
	return append([]string(nil), ix.order...)
}

// Build populates the index from blocks, fresh per invocation. When
// withDependencies is set, every reference is resolved through the label map
// and recorded as a directed edge in both graphs when it lands on a
// different block; self-references and unresolvable references are silently
// dropped.
//
// Duplicate labels are a documented ambiguity: the later block wins the
// shared label identifier and the earlier block stays reachable under its
// kind/ordinal key.
func Build(ctx context.Context, blocks []*scanner.Block, withDependencies bool) (*Index, error) {
	ix := &Index{
		Labels:  make(map[string]string),
		Blocks:  make(map[string]*scanner.Block, len(blocks)),
		Kinds:   make(map[string][]string),
		Symbols: make(map[string][]string),
		Forward: make(map[string][]string, len(blocks)),
		Reverse: make(map[string][]string, len(blocks)),
	}

	idFor := make(map[*scanner.Block]string, len(blocks))
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "index build cancelled")
		}
		id := b.ID()
		if prev, taken := ix.Blocks[id]; taken {
			// later duplicate wins the label key; rehome the earlier block
			fallback := prev.FallbackID()
			ix.Blocks[fallback] = prev
			ix.Forward[fallback] = []string{}
			ix.Reverse[fallback] = []string{}
			idFor[prev] = fallback
			for i, existing := range ix.order {
				if existing == id {
					ix.order[i] = fallback
					break
				}
			}
			rewriteID(ix.Kinds[prev.Kind], id, fallback)
			for _, sym := range prev.Symbols {
				rewriteID(ix.Symbols[sym], id, fallback)
			}
		}
		if b.Label != "" {
			ix.Labels[b.Label] = id
		}
		ix.Blocks[id] = b
		ix.Kinds[b.Kind] = append(ix.Kinds[b.Kind], id)
		for _, sym := range b.Symbols {
			ix.Symbols[sym] = append(ix.Symbols[sym], id)
		}
		ix.Forward[id] = []string{}
		ix.Reverse[id] = []string{}
		ix.order = append(ix.order, id)
		idFor[b] = id
	}

	if !withDependencies {
		return ix, nil
	}

	for _, b := range blocks {
		id := idFor[b]
		for _, ref := range b.References {
			if err := ctx.Err(); err != nil {
				return nil, errors.Cancelled(err, "dependency build cancelled")
			}
			target, ok := ix.Labels[ref]
			if !ok || target == id {
				continue
			}
			ix.Forward[id] = append(ix.Forward[id], target)
			ix.Reverse[target] = append(ix.Reverse[target], id)
			b.Dependencies = append(b.Dependencies, target)
			ix.Blocks[target].Dependents = append(ix.Blocks[target].Dependents, id)
		}
	}
	return ix, nil
}

// rewriteID renames one identifier in place within a lookup slice.
func rewriteID(ids []string, from, to string) {
	for i, id := range ids {
		if id == from {
			ids[i] = to
			return
		}
	}
}
