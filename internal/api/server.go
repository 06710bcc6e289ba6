package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/generator"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

// Server represents the API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
}

// NewServer creates a new API server serving the configured scripts.
func NewServer(cfg *config.Config, gen *generator.Generator, bindAddr string) *Server {
	s := &Server{
		router: chi.NewRouter(),
	}

	// Setup middleware
	s.router.Use(Recovery)
	s.router.Use(Logger)
	s.router.Use(CORS)

	s.setupRoutes(NewHandler(cfg, gen))

	s.httpServer = &http.Server{
		Addr:         bindAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(h *Handler) {
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.router.Get("/api/v1/scripts", h.GetScripts)

	s.router.Get("/{script_name}", h.GetScriptContent)
	s.router.Get("/{script_name}/settings", h.GetScriptSettings)
	// Historic alias for /settings, kept for existing consumers.
	s.router.Get("/{script_name}/setup", h.GetScriptSettings)
}

// Router returns the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the API server and blocks until it stops.
func (s *Server) Start() error {
	log.Infof("[API] Starting server on %s", s.httpServer.Addr)
	log.Infof("[API] Example: curl http://%s/api/v1/scripts", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server.
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
