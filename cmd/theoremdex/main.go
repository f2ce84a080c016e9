package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"theoremdex/internal/core/app"
	"theoremdex/internal/core/config"
	"theoremdex/internal/core/ports"
	"theoremdex/internal/shared/observability"
	"theoremdex/internal/shared/util"
	"theoremdex/internal/ui/report"
)

var (
	configPath = flag.String("config", "./theoremdex.toml", "Path to config file")
	doc        = flag.String("doc", "", "Document to operate on (defaults to every listed document)")
	extract    = flag.Bool("extract", false, "Extract theorem-like blocks and exit")
	indexDoc   = flag.Bool("index", false, "Build the dependency index and exit")
	lookup     = flag.String("lookup", "", "Resolve a query to a statement and its proof, then exit")
	watch      = flag.Bool("watch", false, "Keep running and reindex documents as they change")
	trend      = flag.Duration("trend", 0, "Report index changes over the given window (requires history) and exit")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("theoremdex v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./theoremdex.toml" && os.IsNotExist(err) {
			if cfg, err = config.Load("./theoremdex.example.toml"); err != nil {
				cfg = config.Default()
			}
		} else {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(ctx, cfg.Tracing.Endpoint, VERSION)
		if err != nil {
			slog.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("tracing shutdown", "error", err)
			}
		}()
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("close", "error", err)
		}
	}()

	if err := run(ctx, a, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, cfg *config.Config) error {
	svc := a.TheoremService()
	console := report.NewConsole(os.Stdout)

	if *trend > 0 {
		rep, err := a.Trend(time.Now().Add(-*trend))
		if err != nil {
			return err
		}
		if rep == nil {
			fmt.Println("not enough snapshots in the window")
			return nil
		}
		fmt.Printf("project %s: %d snapshots, blocks %+d, dependencies %+d, cycles %+d, orphans %+d\n",
			rep.ProjectKey, rep.SnapshotsEvaluated,
			rep.BlockDelta, rep.DependencyDelta, rep.CycleDelta, rep.OrphanDelta)
		return nil
	}

	docs, err := selectDocuments(ctx, a)
	if err != nil {
		return err
	}

	switch {
	case *extract:
		for _, id := range docs {
			res, err := svc.ExtractTheorems(ctx, ports.ExtractRequest{DocumentID: id})
			if err != nil {
				return err
			}
			if err := console.PresentExtract(res); err != nil {
				return err
			}
		}
		return nil

	case *lookup != "":
		if len(docs) != 1 {
			return fmt.Errorf("lookup requires exactly one document, found %d (use -doc)", len(docs))
		}
		res, err := svc.LookupProof(ctx, ports.LookupRequest{DocumentID: docs[0], Query: *lookup})
		if err != nil {
			return err
		}
		return console.PresentLookup(res)

	case *watch:
		if err := indexAll(ctx, svc, cfg, console, docs); err != nil {
			return err
		}
		w, err := a.StartWatcher(ctx, func(res ports.IndexResult) {
			if err := emitResult(cfg, console, res); err != nil {
				slog.Warn("output failed", "document", res.Path, "error", err)
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
		slog.Info("watching for changes", "roots", cfg.Scan.Roots)
		<-ctx.Done()
		return nil

	case *indexDoc:
		return indexAll(ctx, svc, cfg, console, docs)

	default:
		// Indexing is also the default mode.
		return indexAll(ctx, svc, cfg, console, docs)
	}
}

func selectDocuments(ctx context.Context, a *app.App) ([]string, error) {
	if *doc != "" {
		return []string{*doc}, nil
	}
	docs, err := a.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found under %v", a.Config.Scan.Roots)
	}
	return docs, nil
}

func indexAll(ctx context.Context, svc ports.TheoremService, cfg *config.Config, console *report.Console, docs []string) error {
	for _, id := range docs {
		res, err := svc.IndexDocument(ctx, ports.IndexRequest{DocumentID: id})
		if err != nil {
			return err
		}
		if err := emitResult(cfg, console, res); err != nil {
			return err
		}
	}
	return nil
}

// emitResult fans one index result out to the configured outputs.
func emitResult(cfg *config.Config, console *report.Console, res ports.IndexResult) error {
	if err := console.PresentIndex(res); err != nil {
		return err
	}
	if cfg.Output.Markdown != "" {
		if err := util.WriteFileWithDirs(cfg.Output.Markdown, []byte(report.RenderSummary(res)), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
	}
	if cfg.Output.Mermaid != "" {
		if err := util.WriteFileWithDirs(cfg.Output.Mermaid, []byte(report.RenderMermaid(res)), 0o644); err != nil {
			return fmt.Errorf("write mermaid diagram: %w", err)
		}
	}
	if inj := cfg.Output.UpdateMarkdown; inj != nil {
		body := report.RenderSummary(res) + "\n" + report.RenderMermaid(res)
		if err := report.InjectReport(inj.File, inj.Marker, body); err != nil {
			return fmt.Errorf("update markdown: %w", err)
		}
	}
	return nil
}
