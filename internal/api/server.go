package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 2 * time.Minute // POST /refresh waits for every download.
	shutdownTimeout = 5 * time.Second
)

// Server runs the HTTP API until its context is canceled.
type Server struct {
	log *slog.Logger
	srv *http.Server
}

func NewServer(log *slog.Logger, port int, handler http.Handler) *Server {
	return &Server{
		log: log,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      otelhttp.NewHandler(handler, "kiez-api"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

// Run starts listening and blocks until ctx is done and the server has shut down.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.log.InfoContext(ctx, "HTTP server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.ErrorContext(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.log.InfoContext(ctx, "Starting HTTP server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}
