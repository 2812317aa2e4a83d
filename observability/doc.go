// Package observability wires OpenTelemetry tracing and metrics for the
// HTTP client and the results server.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("restsense"))
//	defer tp.Shutdown(ctx)
//
// Client metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("restsense"))
//	client, err := httpclient.New(cfg, httpclient.WithMetrics(metrics))
package observability
