// Package observability provides OpenTelemetry tracing and metrics for the
// loading pipeline.
//
// Tracing and metric export are off by default. Setup installs global
// providers when enabled and returns a shutdown function:
//
//	shutdown, err := observability.Setup(ctx, cfg)
//	defer shutdown(ctx)
//
// Loader operations are tracked with an Operation, which owns a span and
// records load metrics when it ends:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "gli.graph", attrs...)
//	defer func() { op.End(err) }()
package observability
