package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"resumelens/internal/observability"
	"resumelens/internal/textmetrics"
)

// Run starts every server component and blocks until ctx is cancelled or
// the listener fails
func (s *Server) Run(ctx context.Context) error {
	om, err := s.initializeObservability()
	if err != nil {
		return err
	}
	defer s.shutdownObservability(om)

	if err := s.startLexiconWatcher(om); err != nil {
		return err
	}
	defer s.stopLexiconWatcher()

	httpServer := s.setupHTTPServer(om)

	if err := s.configureTLS(httpServer); err != nil {
		return err
	}

	s.displayServerInfo()

	return s.serveUntilDone(ctx, httpServer)
}

// initializeObservability sets up observability components
func (s *Server) initializeObservability() (*observability.ObservabilityManager, error) {
	obsConfig := observability.GetObservabilityConfig(s.AppConfig, s.Version)

	om, err := observability.NewObservabilityManager(obsConfig, s.AppConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	return om, nil
}

func (s *Server) shutdownObservability(om *observability.ObservabilityManager) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := om.Shutdown(ctx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown observability")
	}
}

// startLexiconWatcher hot-reloads the lexicon file when watching is enabled.
// Every reload attempt is counted.
func (s *Server) startLexiconWatcher(om *observability.ObservabilityManager) error {
	if s.AppConfig == nil || !s.AppConfig.Analysis.WatchLexicon || s.Lexicons.Path() == "" {
		return nil
	}

	s.Lexicons.OnReload(func(_ *textmetrics.Lexicon, err error) {
		om.GetMetrics().RecordBusinessMetric(context.Background(), observability.MetricLexiconReload, err == nil, om,
			attribute.String("file", s.Lexicons.Path()))
	})

	if err := s.Lexicons.Start(); err != nil {
		return fmt.Errorf("failed to start lexicon watcher: %w", err)
	}
	return nil
}

func (s *Server) stopLexiconWatcher() {
	if err := s.Lexicons.Stop(); err != nil {
		s.Logger.LogError(err, "Failed to stop lexicon watcher")
	}
}

// setupHTTPServer creates and configures the HTTP server
func (s *Server) setupHTTPServer(om *observability.ObservabilityManager) *http.Server {
	mux := s.setupRoutes(om)

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.Host, s.Port),
		Handler:      om.HTTPMiddleware()(mux),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}
}

// serveUntilDone starts the listener and shuts it down gracefully once ctx ends
func (s *Server) serveUntilDone(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)

	go func() {
		s.Logger.Info("Starting HTTP server",
			"address", server.Addr,
			"tls_enabled", server.TLSConfig != nil)

		var err error
		if server.TLSConfig != nil {
			// Certificates are already in TLSConfig
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.Logger.Info("Shutdown requested, starting graceful shutdown")
		return s.performGracefulShutdown(server)
	}
}

func (s *Server) performGracefulShutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()

	if s.RateLimiter != nil {
		s.RateLimiter.Close()
	}

	s.Logger.Info("Shutting down HTTP server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.Logger.LogError(err, "Failed to shutdown server gracefully, forcing close")
		return server.Close()
	}

	if s.AIService != nil {
		if err := s.AIService.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close AI service")
		}
	}

	s.Logger.Info("Server shutdown completed successfully")
	return nil
}
