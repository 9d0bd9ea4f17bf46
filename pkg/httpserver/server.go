package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// Server wraps http.Server with graceful shutdown and logging.
type Server struct {
	cfg      Config
	srv      *http.Server
	logger   *slog.Logger
	listener net.Listener

	mu      sync.Mutex
	started bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithListener serves on an existing listener instead of Config.Addr.
func WithListener(l net.Listener) Option {
	return func(s *Server) { s.listener = l }
}

// New returns a Server for handler. A nil handler responds 404 to everything.
func New(cfg Config, handler http.Handler, opts ...Option) *Server {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	cfg = cfg.withDefaults()

	s := &Server{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down within ShutdownTimeout.
// A listener failure is returned wrapped with ErrStart.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	s.started = true
	s.mu.Unlock()

	ln := s.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			return errors.Join(ErrStart, err)
		}
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(ln) }()
	s.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Join(ErrStart, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.ErrorContext(ctx, "http server shutdown failed", logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	<-errCh
	s.logger.InfoContext(ctx, "http server stopped")
	return nil
}
