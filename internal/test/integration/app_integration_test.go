package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"theoremdex/internal/core/app"
	"theoremdex/internal/core/config"
	"theoremdex/internal/core/ports"
	"theoremdex/internal/ui/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDocument(t *testing.T, tmpDir string) string {
	paper := `\documentclass{article}
\begin{document}

\begin{definition}\label{def:norm}
A norm on $V$ is a function $\|\cdot\|$ with the usual axioms.
\end{definition}

\begin{lemma}[Triangle Step]\label{lem:tri}
For any $x, y$ we have $\|x+y\| \leq \|x\| + \|y\|$ by \ref{def:norm}.
\end{lemma}
\begin{proof}
Expand both sides using \ref{def:norm}.
\end{proof}

\begin{theorem}[Completeness]\label{thm:complete}
Every Cauchy sequence converges. Combines \ref{lem:tri} and \ref{def:norm}.
\end{theorem}
\begin{proof}[Sketch]
Apply \ref{lem:tri} along the sequence.
\end{proof}

\end{document}`
	path := filepath.Join(tmpDir, "paper.tex")
	err := os.WriteFile(path, []byte(paper), 0644)
	require.NoError(t, err)
	return path
}

func TestFullPipelineIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := createTestDocument(t, tmpDir)

	cfg := config.Default()
	cfg.Scan.Roots = []string{tmpDir}
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(tmpDir, "history.db")
	cfg.History.ProjectKey = "integration"

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	svc := a.TheoremService()

	// The source discovers the document on its own.
	docs, err := a.Source.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{docPath}, docs)

	// Index it end to end.
	res, err := svc.IndexDocument(ctx, ports.IndexRequest{DocumentID: docPath})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, map[string]int{"definition": 1, "lemma": 1, "theorem": 1}, res.Summary.ByKind)
	assert.Empty(t, res.Cycles)
	assert.Equal(t, 3, res.Summary.DependencyCount)
	assert.ElementsMatch(t, []string{"lem:tri", "def:norm"}, res.Index.Forward["thm:complete"])
	assert.ElementsMatch(t, []string{"lem:tri", "thm:complete"}, res.Index.Reverse["def:norm"])

	// The snapshot landed in history.
	snapshots, err := a.History.LoadSnapshots("integration", time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 3, snapshots[0].BlockCount)
	assert.Equal(t, res.RunID, snapshots[0].RunID)

	// Lookup finds the theorem and its qualified proof.
	found, err := svc.LookupProof(ctx, ports.LookupRequest{DocumentID: docPath, Query: "completeness"})
	require.NoError(t, err)
	require.True(t, found.Found)
	assert.Equal(t, "thm:complete", found.Block.Label)
	require.True(t, found.Proof.HasProof)
	assert.Equal(t, "Sketch", found.Proof.Qualifier)
	assert.Contains(t, found.Proof.Body, `Apply \ref{lem:tri}`)

	// Reports render from the same result.
	summary := report.RenderSummary(res)
	assert.Contains(t, summary, "| theorem | 1 |")
	mermaid := report.RenderMermaid(res)
	assert.Contains(t, mermaid, "n_thm_complete --> n_lem_tri")
}

func TestWatchModeIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := createTestDocument(t, tmpDir)

	cfg := config.Default()
	cfg.Scan.Roots = []string{tmpDir}
	cfg.Watch.Debounce = 50 * time.Millisecond

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	results := make(chan ports.IndexResult, 4)
	w, err := a.StartWatcher(context.Background(), func(res ports.IndexResult) {
		results <- res
	})
	require.NoError(t, err)
	defer w.Close()

	// Append a block and expect a reindex with the new count.
	extra := "\n\\begin{remark}\\label{rem:new}\nA fresh remark.\n\\end{remark}\n"
	f, err := os.OpenFile(docPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(extra)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	select {
	case res := <-results:
		assert.Equal(t, docPath, res.Path)
		assert.Equal(t, 4, res.Summary.Total)
	case <-time.After(5 * time.Second):
		t.Fatal("no reindex within timeout")
	}
}
