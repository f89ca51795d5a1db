package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/agbru/beaconfix/internal/aggregator"
	"github.com/agbru/beaconfix/internal/beacon"
	"github.com/agbru/beaconfix/internal/config"
	"github.com/agbru/beaconfix/internal/logging"
	"github.com/agbru/beaconfix/internal/metrics"
	"github.com/agbru/beaconfix/internal/resolver"
)

// Aggregator is the part of the round aggregator the server drives.
type Aggregator interface {
	Submit(reading beacon.Reading) (*aggregator.Outcome, error)
	Snapshot() aggregator.Snapshot
	Timeout() time.Duration
	Close(ctx context.Context) error
}

var _ Aggregator = (*aggregator.Aggregator)(nil)

// Server serves the resolver and the split aggregator over HTTP.
type Server struct {
	httpServer      *http.Server
	aggregator      Aggregator
	resolver        resolver.Resolver
	metrics         *Metrics
	logger          logging.Logger
	sampler         *metrics.SystemSampler
	security        SecurityConfig
	shutdownTimeout time.Duration
	started         time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the HTTP metrics, typically built with the round metrics
// as an extra collector.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// New creates a server for cfg. agg receives split readings and res resolves
// single-shot requests.
//
// Parameters:
//   - cfg: The application configuration (listen address and timeouts).
//   - agg: The round aggregator owned by the server from now on.
//   - res: The resolver of /topsecret.
//   - opts: Optional settings.
//
// Returns:
//   - *Server: A server ready to Start.
func New(cfg config.AppConfig, agg Aggregator, res resolver.Resolver, opts ...Option) *Server {
	s := &Server{
		aggregator:      agg,
		resolver:        res,
		logger:          logging.NewNopLogger(),
		sampler:         metrics.NewSystemSampler(),
		security:        DefaultSecurityConfig(),
		shutdownTimeout: cfg.ShutdownTimeout,
		started:         time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler with every middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/topsecret", s.wrap(s.handleTopSecret))
	mux.HandleFunc("/topsecret_split/{name}", s.wrap(s.handleSplit))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return mux
}

// wrap applies the middleware chain, outermost first.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.correlationMiddleware(s.metricsMiddleware(h)))
}

// Start listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully: the
// listener closes, the aggregator seals its live round so that pending split
// requests receive their outcome, and in-flight requests drain. Both steps
// are bounded by the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		_ = s.aggregator.Close(context.Background())
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return s.shutdown()
}

func (s *Server) shutdown() error {
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = config.EstimateWriteTimeout(s.aggregator.Timeout())
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down", logging.Duration("timeout", timeout))
	httpDone := make(chan error, 1)
	go func() {
		httpDone <- s.httpServer.Shutdown(ctx)
	}()

	var errs []error
	if err := s.aggregator.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close aggregator: %w", err))
	}
	if err := <-httpDone; err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
	}
	err := errors.Join(errs...)
	if err == nil {
		s.logger.Info("server stopped")
	}
	return err
}

// retryAfterSeconds is the Retry-After hint of a busy or closing server:
// the time for the live round to clear.
func (s *Server) retryAfterSeconds() int {
	if s.aggregator == nil {
		return 1
	}
	return max(1, int((s.aggregator.Timeout()+time.Second-1)/time.Second))
}
