package observability

import "go.opentelemetry.io/otel"

// Tracer is the shared tracer for service-level spans. The provider is
// configured in cmd; until then this resolves to the global no-op.
var Tracer = otel.Tracer("theoremdex")
