// Package server exposes the monitor's latest readings to Prometheus.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/logging"
)

// ShutdownTimeout bounds how long in-flight scrapes may take once the
// session ends.
const ShutdownTimeout = 5 * time.Second

// Server serves GET /metrics.
type Server struct {
	addr    string
	metrics *Metrics
	logger  logging.Logger
	srv     *http.Server
}

// New creates a server for addr. It does not listen until Run.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{addr: addr, metrics: metrics, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.metricsMiddleware(s.handleMetrics)))
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return apperrors.WrapError(err, "failed to start metrics server on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("metrics server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return apperrors.WrapError(err, "metrics server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("metrics server shutdown", err)
		return apperrors.WrapError(err, "metrics server shutdown")
	}
	s.logger.Info("metrics server stopped")
	return nil
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordRequest(r.URL.Path, strconv.Itoa(rec.status))
	}
}
