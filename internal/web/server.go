// Package web provides the HTTP API for immo-abidjan.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/immo-abidjan/internal/listing"
	"github.com/evcraddock/immo-abidjan/internal/logging"
	"github.com/evcraddock/immo-abidjan/internal/refresh"
)

// Readiness reports and drives store initialization.
type Readiness interface {
	EnsureReady(ctx context.Context) (refresh.State, error)
	State() refresh.State
}

// Refresher runs one refresh cycle on demand.
type Refresher interface {
	RunOnce(ctx context.Context) (refresh.Result, error)
}

// Server is the API HTTP server.
type Server struct {
	listings  *listing.Service
	ready     Readiness
	refresher Refresher
	router    chi.Router
	now       func() time.Time
}

// NewServer creates the API server.
func NewServer(listings *listing.Service, ready Readiness, refresher Refresher) *Server {
	s := &Server{
		listings:  listings,
		ready:     ready,
		refresher: refresher,
		router:    chi.NewRouter(),
		now:       time.Now,
	}

	s.router.Use(logging.RequestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/listings", s.apiListListings)
		r.Get("/listings/today", s.apiListToday)
		r.Get("/listings/{id}", s.apiGetListing)
		r.Get("/neighborhoods", s.apiNeighborhoods)
		r.Get("/stats", s.apiStats)
		r.Post("/admin/refresh", s.apiRefresh)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("API server stopped")
	return nil
}

// ensureReady initializes the store on first use. Failures are logged;
// reads then fall back to empty results.
func (s *Server) ensureReady(r *http.Request) {
	if _, err := s.ready.EnsureReady(r.Context()); err != nil {
		slog.Warn("store not ready", "path", r.URL.Path, "error", err)
	}
}
