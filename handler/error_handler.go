package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that renders HTTPError values with
// their own status and message, and anything else as a bare 500. Client
// errors are logged at warn, server errors at error. A nil logger discards.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(ctx Context, err error) {
		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var httpErr HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			message = httpErr.Message
		}

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		r := ctx.Request()
		log.LogAttrs(ctx, level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := Error(status, message).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to render error response", logger.Error(renderErr))
		}
	}
}
