// Package httpserver runs an http.Handler with configured timeouts and shuts
// it down gracefully when the run context is cancelled.
//
//	srv := httpserver.New(cfg, router, httpserver.WithLogger(log))
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
//
// Liveness and Readiness build probe handlers for /health endpoints.
package httpserver
