// Package scanner locates theorem-like delimited blocks in raw document text.
//
// Scanning is two deterministic stages: a single-pass tokenizer produces an
// immutable stream of typed delimiter events, then a matching pass pairs
// close events with open events under a greedy, kind-typed policy. The policy
// is deliberately not true nesting: a malformed document (mismatched kinds,
// overlapping ranges) yields best-effort blocks rather than an error.
package scanner

import (
	"context"

	"theoremdex/internal/core/errors"
)

// ScanBlocks returns the blocks of recognized kinds found in text, in
// closing-delimiter document order with 1-based ordinals. An empty kinds
// slice selects DefaultKinds. The only error is cancellation; malformed
// structure is silently excluded.
func ScanBlocks(ctx context.Context, text string, kinds []string) ([]*Block, error) {
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	events, err := tokenize(ctx, text, kinds)
	if err != nil {
		return nil, err
	}
	return matchEvents(ctx, text, events, newLineIndex(text))
}

// matchEvents pairs close events with opens. An ordered worklist of open
// events is scanned from a cursor that only moves forward: each close
// consumes the first open at or after the cursor with the same kind that
// precedes it in the document, then the cursor advances past the consumed
// entry. Opens skipped by the cursor are never revisited and closes with no
// candidate open are dropped.
func matchEvents(ctx context.Context, text string, events []delimiterEvent, lines *lineIndex) ([]*Block, error) {
	var opens []delimiterEvent
	for _, ev := range events {
		if ev.typ == eventOpen {
			opens = append(opens, ev)
		}
	}

	var blocks []*Block
	cursor := 0
	for _, ev := range events {
		if ev.typ != eventClose {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "block scan cancelled")
		}
		for i := cursor; i < len(opens); i++ {
			open := opens[i]
			if open.start >= ev.start {
				// remaining opens begin after this close; it has no match
				break
			}
			if open.kind != ev.kind {
				continue
			}
			blocks = append(blocks, &Block{
				Kind:        open.kind,
				Name:        open.name,
				Label:       open.label,
				StartLine:   lines.lineAt(open.start),
				EndLine:     lines.lineAt(ev.end - 1),
				StartOffset: open.start,
				EndOffset:   ev.end,
				Raw:         text[open.start:ev.end],
				Ordinal:     len(blocks) + 1,
			})
			cursor = i + 1
			break
		}
	}
	return blocks, nil
}
