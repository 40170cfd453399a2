package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"spamdomains/lib/log"
)

// Server exposes the aggregated blocklist over HTTP so downstream resolvers
// (dnsmasq, Pi-hole, unbound) can pull it from one place. Read-only: the
// file is produced by the update command, never through this API.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	outputPath string
}

// NewServer creates an HTTP server serving the blocklist at outputPath.
func NewServer(bindAddr string, outputPath string) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		outputPath: outputPath,
	}

	s.router.Use(RecoveryMiddleware)
	s.router.Use(LoggingMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         bindAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/", HandleBlocklist(s.outputPath))
	s.router.Get("/spamdomains.txt", HandleBlocklist(s.outputPath))

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", HandleStatus(s.outputPath))
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// Handler returns the underlying HTTP handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening and blocks until the server stops.
func (s *Server) Start() error {
	log.Infof("Serving blocklist on http://%s/", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
