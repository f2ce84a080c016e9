package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"theoremdex/internal/core/errors"
	"theoremdex/internal/core/ports"
	"theoremdex/internal/data/history"
	"theoremdex/internal/engine/extract"
	"theoremdex/internal/engine/graph"
	"theoremdex/internal/engine/index"
	"theoremdex/internal/engine/match"
	"theoremdex/internal/engine/scanner"
	"theoremdex/internal/shared/observability"
)

type theoremService struct {
	app *App
}

var _ ports.TheoremService = (*theoremService)(nil)

func NewTheoremService(app *App) ports.TheoremService {
	return &theoremService{app: app}
}

func (s *theoremService) ExtractTheorems(ctx context.Context, req ports.ExtractRequest) (ports.ExtractResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "theoremService.ExtractTheorems",
		trace.WithAttributes(attribute.String("document", req.DocumentID)))
	defer span.End()

	runID := uuid.NewString()
	start := time.Now()

	doc, blocks, err := s.scanAndEnrich(ctx, req.DocumentID, req.Kinds, extract.Options{
		Symbols:    s.resolveBool(req.Symbols, s.app.Config.Engine.IncludeSymbols),
		References: s.resolveBool(req.References, s.app.Config.Engine.IncludeReferences),
	})
	if err != nil {
		return ports.ExtractResult{}, errors.AddContext(err, errors.CtxOperation, "extract")
	}

	observability.ScanDuration.WithLabelValues("extract").Observe(time.Since(start).Seconds())
	slog.Info("theorems extracted",
		"run_id", runID, "document", doc.Path, "blocks", len(blocks))

	return ports.ExtractResult{RunID: runID, Path: doc.Path, Blocks: blocks}, nil
}

func (s *theoremService) IndexDocument(ctx context.Context, req ports.IndexRequest) (ports.IndexResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "theoremService.IndexDocument",
		trace.WithAttributes(attribute.String("document", req.DocumentID)))
	defer span.End()

	runID := uuid.NewString()
	start := time.Now()

	doc, blocks, err := s.scanAndEnrich(ctx, req.DocumentID, req.Kinds, extract.Options{
		Symbols:    true,
		References: true,
	})
	if err != nil {
		return ports.IndexResult{}, errors.AddContext(err, errors.CtxOperation, "index")
	}

	withDeps := s.resolveBool(req.WithDependencies, s.app.Config.Engine.BuildDependencies)
	ix, err := index.Build(ctx, blocks, withDeps)
	if err != nil {
		return ports.IndexResult{}, errors.AddContext(err, errors.CtxOperation, "index")
	}

	cycles := graph.DetectCycles(ix.Forward, ix.IDs())
	summary := index.Summarize(ix, cycles)

	edges := 0
	for _, targets := range ix.Forward {
		edges += len(targets)
	}
	observability.GraphNodes.Set(float64(summary.Total))
	observability.GraphEdges.Set(float64(edges))
	observability.CyclesDetected.Set(float64(len(cycles)))
	observability.ScanDuration.WithLabelValues("index").Observe(time.Since(start).Seconds())

	res := ports.IndexResult{
		RunID:   runID,
		Path:    doc.Path,
		Blocks:  blocks,
		Index:   ix,
		Cycles:  cycles,
		Summary: summary,
	}

	if s.app.History != nil {
		if err := s.saveSnapshot(runID, doc.Path, summary); err != nil {
			slog.Warn("history snapshot skipped", "document", doc.Path, "error", err)
		}
	}

	slog.Info("document indexed",
		"run_id", runID,
		"document", doc.Path,
		"blocks", summary.Total,
		"edges", edges,
		"cycles", len(cycles))
	return res, nil
}

func (s *theoremService) LookupProof(ctx context.Context, req ports.LookupRequest) (ports.LookupResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "theoremService.LookupProof",
		trace.WithAttributes(
			attribute.String("document", req.DocumentID),
			attribute.String("query", req.Query)))
	defer span.End()

	if req.Query == "" {
		return ports.LookupResult{}, errors.New(errors.CodeValidationError, "lookup query must not be empty")
	}

	runID := uuid.NewString()
	start := time.Now()

	doc, blocks, err := s.scanAndEnrich(ctx, req.DocumentID, req.Kinds, extract.Options{
		Symbols:    false,
		References: true,
	})
	if err != nil {
		err = errors.AddContext(err, errors.CtxOperation, "lookup")
		return ports.LookupResult{}, errors.AddContext(err, errors.CtxQuery, req.Query)
	}

	fuzzy := s.resolveBool(req.Fuzzy, s.app.Config.Engine.FuzzyMatch)
	m := match.Best(blocks, req.Query, fuzzy)

	res := ports.LookupResult{
		RunID:       runID,
		Path:        doc.Path,
		Found:       m.Found,
		Block:       m.Block,
		Score:       m.Score,
		Suggestions: m.Suggestions,
	}
	if m.Found {
		res.Proof = scanner.LocateProof(doc.Text, m.Block)
	} else {
		observability.LookupMisses.Inc()
	}

	observability.LookupDuration.Observe(time.Since(start).Seconds())
	slog.Info("proof lookup",
		"run_id", runID,
		"document", doc.Path,
		"query", req.Query,
		"found", m.Found,
		"score", m.Score)
	return res, nil
}

// scanAndEnrich runs the shared front half of every surface: load, scan, then
// per-block content extraction.
func (s *theoremService) scanAndEnrich(ctx context.Context, documentID string, kinds []string, opts extract.Options) (ports.Document, []*scanner.Block, error) {
	if documentID == "" {
		return ports.Document{}, nil, errors.New(errors.CodeValidationError, "document id is required")
	}

	doc, err := s.app.Source.Load(ctx, documentID)
	if err != nil {
		return ports.Document{}, nil, err
	}

	if len(kinds) == 0 {
		kinds = s.app.Config.Engine.Kinds
	}

	blocks, err := scanner.ScanBlocks(ctx, doc.Text, kinds)
	if err != nil {
		return ports.Document{}, nil, errors.AddContext(err, errors.CtxDocument, doc.Path)
	}

	for _, block := range blocks {
		if err := extract.Content(ctx, block, opts); err != nil {
			return ports.Document{}, nil, errors.AddContext(err, errors.CtxDocument, doc.Path)
		}
		observability.BlocksExtracted.WithLabelValues(block.Kind).Inc()
	}
	return doc, blocks, nil
}

func (s *theoremService) saveSnapshot(runID, document string, summary index.Summary) error {
	snapshot := history.Snapshot{
		ProjectKey:    s.app.Config.History.ProjectKey,
		SchemaVersion: history.SchemaVersion,
		RunID:         runID,
		Timestamp:     time.Now().UTC(),
		Document:      document,

		BlockCount:      summary.Total,
		ReferenceCount:  summary.ReferenceCount,
		DependencyCount: summary.DependencyCount,
		OrphanCount:     summary.OrphanCount,
		CycleCount:      len(summary.Cycles),
		SymbolCount:     len(summary.Symbols),
	}
	if err := s.app.History.SaveSnapshot(snapshot.ProjectKey, snapshot); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", document, err)
	}
	return nil
}

func (s *theoremService) resolveBool(override, configured *bool) bool {
	if override != nil {
		return *override
	}
	if configured != nil {
		return *configured
	}
	return true
}
