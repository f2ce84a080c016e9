// Package ports defines the driving and driven interfaces between the engine
// and its collaborators.
package ports

import (
	"context"
	"time"

	"theoremdex/internal/data/history"
	"theoremdex/internal/engine/index"
	"theoremdex/internal/engine/scanner"
)

// Document is raw, already-decoded text plus the identifier it came from.
// The path is attribution only; parsing never depends on it.
type Document struct {
	Path string
	Text string
}

// DocumentSource abstracts where documents come from.
type DocumentSource interface {
	Load(ctx context.Context, id string) (Document, error)
	// List enumerates the document identifiers the source can serve.
	List(ctx context.Context) ([]string, error)
}

// HistoryStore abstracts snapshot persistence for trend workflows.
type HistoryStore interface {
	SaveSnapshot(projectKey string, snapshot history.Snapshot) error
	LoadSnapshots(projectKey string, since time.Time) ([]history.Snapshot, error)
}

// ExtractRequest selects a document and what to derive from its blocks.
type ExtractRequest struct {
	DocumentID string
	Kinds      []string
	Symbols    *bool
	References *bool
}

// ExtractResult is the extraction surface's structured output.
type ExtractResult struct {
	RunID  string
	Path   string
	Blocks []*scanner.Block
}

// IndexRequest drives the full indexing pipeline.
type IndexRequest struct {
	DocumentID       string
	Kinds            []string
	WithDependencies *bool
}

// IndexResult carries the built index, detected cycles, and summary.
type IndexResult struct {
	RunID   string
	Path    string
	Blocks  []*scanner.Block
	Index   *index.Index
	Cycles  [][]string
	Summary index.Summary
}

// LookupRequest resolves a free-text query to a block and its proof.
type LookupRequest struct {
	DocumentID string
	Query      string
	Kinds      []string
	Fuzzy      *bool
}

// LookupResult reports the match, or a miss with suggestions. A miss is a
// structured result, not an error.
type LookupResult struct {
	RunID       string
	Path        string
	Found       bool
	Block       *scanner.Block
	Score       int
	Proof       scanner.ProofInfo
	Suggestions []*scanner.Block
}

// TheoremService is the driving port shared by the three tool surfaces.
type TheoremService interface {
	ExtractTheorems(ctx context.Context, req ExtractRequest) (ExtractResult, error)
	IndexDocument(ctx context.Context, req IndexRequest) (IndexResult, error)
	LookupProof(ctx context.Context, req LookupRequest) (LookupResult, error)
}

// Presenter consumes the engine's structured results.
type Presenter interface {
	PresentExtract(res ExtractResult) error
	PresentIndex(res IndexResult) error
	PresentLookup(res LookupResult) error
}
