package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/christianazinn/triple/internal/logging"
)

// Timeouts for the metrics listener. The endpoint serves one small
// text response, so the limits are tight.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server is the HTTP listener exposing /metrics while a search runs.
type Server struct {
	addr    string
	metrics *Metrics
	logger  logging.Logger
	httpSrv *http.Server
}

// NewServer creates a metrics server bound to addr.
func NewServer(addr string, metrics *Metrics, logger logging.Logger) *Server {
	s := &Server{
		addr:    addr,
		metrics: metrics,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.securityHeaders(s.handleMetrics))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully. It returns
// nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleMetrics serves the Prometheus exposition; only GET is accepted.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request",
			logging.String("method", r.Method),
			logging.String("remote", r.RemoteAddr))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// securityHeaders sets the response headers appropriate for an endpoint
// that serves plain text and embeds nothing.
func (s *Server) securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next(w, r)
	}
}
