package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "theoremdex_scan_seconds",
		Help:    "Time spent scanning a document for theorem-like blocks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	BlocksExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "theoremdex_blocks_extracted_total",
		Help: "Total number of blocks extracted, by kind.",
	}, []string{"kind"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "theoremdex_graph_nodes_total",
		Help: "Number of blocks in the most recently built dependency graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "theoremdex_graph_edges_total",
		Help: "Number of edges in the most recently built dependency graph.",
	})

	CyclesDetected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "theoremdex_cycles_detected",
		Help: "Number of reference cycles in the most recently built index.",
	})

	LookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "theoremdex_lookup_seconds",
		Help:    "Time spent resolving a proof lookup query.",
		Buckets: prometheus.DefBuckets,
	})

	LookupMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "theoremdex_lookup_misses_total",
		Help: "Total number of lookups that fell below the acceptance threshold.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "theoremdex_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
