package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/base-14/examples/go/parking-lot/internal/logging"
)

// Server is the diagnostics listener of a shell session: /health and
// /metrics only. Lot operations are never reachable over HTTP.
type Server struct {
	httpServer  *http.Server
	serviceName string
	listener    net.Listener
}

func NewServer(addr, serviceName string, lot LotObserver, tracer trace.Tracer) *Server {
	s := &Server{serviceName: serviceName}
	reg := NewRegistry(serviceName, lot)

	r := chi.NewRouter()

	r.Use(RecoveryMiddleware)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TracingMiddleware(tracer))

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: s.serviceName,
		Meta:    extractMeta(r.Context()),
	})
}

// Start binds the listener and serves in the background. Errors after the
// bind are logged.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	s.listener = ln
	logging.Info(ctx).Str("addr", ln.Addr().String()).Msg("diagnostics server listening")

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx).Err(err).Msg("diagnostics server stopped")
		}
	}()

	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.httpServer.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info(ctx).Msg("shutting down diagnostics server")
	return s.httpServer.Shutdown(ctx)
}
