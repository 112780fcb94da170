package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonesrussell/scrapefeed/internal/config"
	"github.com/jonesrussell/scrapefeed/internal/extract"
	"github.com/jonesrussell/scrapefeed/internal/logger"
)

const (
	readHeaderTimeout      = 10 * time.Second
	defaultShutdownTimeout = 30 * time.Second
	errorChannelBufferSize = 1
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	logger logger.Interface
	server *http.Server
}

// NewServer builds the HTTP server around the extraction engine.
func NewServer(log logger.Interface, extractor *extract.Extractor, cfg *config.Config) *Server {
	router := SetupRouter(log.WithComponent("api"), extractor)

	return &Server{
		logger: log,
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           router,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Run serves until a shutdown signal or a server error, then shuts down
// gracefully.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)

	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		s.logger.Error("Server error", "error", err)
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		return s.shutdown(sig)
	}
}

// shutdown drains in-flight requests before stopping.
func (s *Server) shutdown(sig os.Signal) error {
	s.logger.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	s.logger.Info("Server stopped successfully")
	return nil
}
