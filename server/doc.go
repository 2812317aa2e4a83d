// Package server hosts a Gin engine behind an h2c handler.
//
// New wires NoRoute and NoMethod to the NotFound and MethodNotAllowed
// results from server/results. ApplyDefaults installs the middleware from
// server/middleware (recovery, request id, tracing, CORS, body size limit,
// request logging) and registers the endpoints from server/endpoint:
//
//   - /health: aggregated health of the registered checkers
//   - /alive: liveness check
//   - /version: build version information
//
// # Usage
//
//	srv := server.New(cfg, log)
//	if err := srv.ApplyDefaults("orders", upstream.HealthChecker("/health")); err != nil {
//		return err
//	}
//	srv.GinEngine().GET("/orders/:id", results.Handle(getOrder))
//	if err := srv.Start(ctx); err != nil {
//		return err
//	}
//	defer srv.Stop(context.Background())
package server
