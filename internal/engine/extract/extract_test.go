package extract

import (
	"context"
	"reflect"
	"testing"

	"theoremdex/internal/core/errors"
	"theoremdex/internal/engine/scanner"
)

func scanAll(t *testing.T, text string) []*scanner.Block {
	t.Helper()
	blocks, err := scanner.ScanBlocks(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	return blocks
}

func TestContent_Statement(t *testing.T) {
	text := `\begin{theorem}[Main]{thm:main}

Let $x$ be arbitrary.
Then $x = x$.

\end{theorem}`
	b := scanAll(t, text)[0]
	if err := Content(context.Background(), b, DefaultOptions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Let $x$ be arbitrary.\nThen $x = x$."
	if b.Statement != want {
		t.Errorf("statement = %q, want %q", b.Statement, want)
	}
}

func TestContent_LabelAdoption(t *testing.T) {
	text := `\begin{lemma}
Helper fact.
\label{lem:helper}
\end{lemma}`
	b := scanAll(t, text)[0]
	if err := Content(context.Background(), b, DefaultOptions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Label != "lem:helper" {
		t.Errorf("label = %q, want lem:helper", b.Label)
	}
	if b.ID() != "lem:helper" {
		t.Errorf("id = %q, want lem:helper", b.ID())
	}
	// the labeling command is stripped from the statement
	if want := "Helper fact."; b.Statement != want {
		t.Errorf("statement = %q, want %q", b.Statement, want)
	}
}

func TestContent_DelimiterLabelWins(t *testing.T) {
	text := `\begin{lemma}{lem:outer}
Fact. \label{lem:inner}
\end{lemma}`
	b := scanAll(t, text)[0]
	if err := Content(context.Background(), b, DefaultOptions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Label != "lem:outer" {
		t.Errorf("delimiter label must win, got %q", b.Label)
	}
}

func TestContent_References(t *testing.T) {
	text := `\begin{theorem}{thm:a}
By \ref{lem:one} and \eqref{eq:two}, using \ref{lem:one} again.
\end{theorem}`
	b := scanAll(t, text)[0]
	if err := Content(context.Background(), b, DefaultOptions); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"lem:one", "eq:two"}
	if !reflect.DeepEqual(b.References, want) {
		t.Errorf("references = %v, want %v (distinct, first-seen order)", b.References, want)
	}
}

func TestContent_OptionsDisable(t *testing.T) {
	text := `\begin{theorem}{thm:a}
$\alpha$ and \ref{lem:b}.
\end{theorem}`
	b := scanAll(t, text)[0]
	if err := Content(context.Background(), b, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.References != nil || b.Symbols != nil {
		t.Errorf("disabled options must leave fields nil, got refs=%v syms=%v", b.References, b.Symbols)
	}
	if b.Statement == "" {
		t.Error("statement extraction always runs")
	}
}

func TestContent_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := scanAll(t, `\begin{theorem}{thm:a}x\end{theorem}`)[0]
	err := Content(ctx, b, DefaultOptions)
	if !errors.IsCode(err, errors.CodeCancelled) {
		t.Errorf("expected CANCELLED, got %v", err)
	}
}
