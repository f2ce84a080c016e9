package scanner

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"theoremdex/internal/core/errors"
)

func TestScanBlocks_WellFormed(t *testing.T) {
	text := `Intro text.
\begin{theorem}[Fundamental Theorem]{thm:fund}
Every x has a y.
\end{theorem}
\begin{lemma}
Helper fact.
\end{lemma}
\begin{definition}{def:set}
A set is a collection.
\end{definition}`

	blocks, err := ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	if blocks[0].Kind != "theorem" || blocks[0].Name != "Fundamental Theorem" || blocks[0].Label != "thm:fund" {
		t.Errorf("unexpected first block: %+v", blocks[0])
	}
	if blocks[0].Ordinal != 1 || blocks[1].Ordinal != 2 || blocks[2].Ordinal != 3 {
		t.Error("ordinals must follow closing-delimiter document order")
	}
	if blocks[1].ID() != "lemma_2" {
		t.Errorf("unlabeled block id = %s, want lemma_2", blocks[1].ID())
	}
	if blocks[0].ID() != "thm:fund" {
		t.Errorf("labeled block id = %s, want thm:fund", blocks[0].ID())
	}
	if blocks[0].StartLine != 2 || blocks[0].EndLine != 4 {
		t.Errorf("unexpected span %d..%d", blocks[0].StartLine, blocks[0].EndLine)
	}
	if !strings.HasPrefix(blocks[0].Raw, `\begin{theorem}`) || !strings.HasSuffix(blocks[0].Raw, `\end{theorem}`) {
		t.Errorf("raw must include delimiters: %q", blocks[0].Raw)
	}
}

func TestScanBlocks_OrdinalFollowsCloseOrder(t *testing.T) {
	// lemma opens after the theorem but closes first
	text := `\begin{theorem}{thm:outer}
Statement.
\begin{lemma}{lem:inner}
Inner fact.
\end{lemma}
\end{theorem}`

	blocks, err := ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// greedy kind-typed policy: the lemma close pairs with the lemma open,
	// the cursor then skips the theorem open, so only one block is emitted
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block under the greedy policy, got %d", len(blocks))
	}
	if blocks[0].Kind != "lemma" || blocks[0].Ordinal != 1 {
		t.Errorf("unexpected block: %+v", blocks[0])
	}
}

func TestScanBlocks_SameKindNesting(t *testing.T) {
	text := `\begin{theorem}{thm:a}
A.
\begin{theorem}{thm:b}
B.
\end{theorem}
\end{theorem}`

	blocks, err := ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// first close consumes the first open; the second close then consumes
	// the inner open, producing overlapping best-effort spans
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Label != "thm:a" || blocks[1].Label != "thm:b" {
		t.Errorf("unexpected labels %q, %q", blocks[0].Label, blocks[1].Label)
	}
}

func TestScanBlocks_MalformedInput(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{"unmatched close ignored", `\end{theorem} \begin{lemma}x\end{lemma}`, 1},
		{"unmatched open dropped", `\begin{theorem}never closed`, 0},
		{"unrecognized kind skipped", `\begin{scratch}x\end{scratch}`, 0},
		{"empty text", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blocks, err := ScanBlocks(context.Background(), tc.text, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(blocks) != tc.want {
				t.Errorf("expected %d blocks, got %d", tc.want, len(blocks))
			}
		})
	}
}

func TestScanBlocks_CustomKinds(t *testing.T) {
	text := `\begin{axiom}{ax:choice}Choice.\end{axiom} \begin{theorem}T.\end{theorem}`
	blocks, err := ScanBlocks(context.Background(), text, []string{"axiom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Kind != "axiom" {
		t.Errorf("expected only the axiom block, got %+v", blocks)
	}
}

func TestScanBlocks_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "\\begin{theorem}{thm:%d}x\\end{theorem}\n", i)
	}

	blocks, err := ScanBlocks(ctx, b.String(), nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !errors.IsCode(err, errors.CodeCancelled) {
		t.Errorf("expected CANCELLED code, got %v", err)
	}
	if blocks != nil {
		t.Error("cancellation must not return partial blocks")
	}
}

func TestScanBlocks_Idempotent(t *testing.T) {
	text := `\begin{theorem}{thm:a}A \ref{thm:b}.\end{theorem}
\begin{theorem}{thm:b}B.\end{theorem}`
	first, err := ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("block counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID() != second[i].ID() || first[i].Raw != second[i].Raw {
			t.Errorf("block %d differs between identical scans", i)
		}
	}
}
