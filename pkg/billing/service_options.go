package billing

import "log/slog"

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// WithLogger sets the logger used for attempt transitions and failures.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
