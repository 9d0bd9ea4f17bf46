package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness responds 200 "ALIVE" while the process is serving.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeProbe(w, http.StatusOK, "ALIVE")
	}
}

// Readiness runs every named check with the request context. It responds
// 200 "READY" when all pass and 503 "NOT_READY" on the first failure.
func Readiness(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(name),
					logger.Error(err),
				)
				writeProbe(w, http.StatusServiceUnavailable, "NOT_READY")
				return
			}
		}
		writeProbe(w, http.StatusOK, "READY")
	}
}

func writeProbe(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
