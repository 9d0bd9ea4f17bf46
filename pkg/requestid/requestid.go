// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed client-supplied X-Request-ID header or
// generates a UUIDv4, stores it in the request context and echoes it in the
// response. LoggerExtractor injects it into slog records built by pkg/logger.
package requestid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

type contextKey struct{}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !isValid(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// LoggerExtractor returns a logger.ContextExtractor adding "request_id".
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}

// isValid accepts 1..128 characters from [a-zA-Z0-9_-].
func isValid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
