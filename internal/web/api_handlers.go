package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// City is reported alongside today's listings.
const City = "Abidjan"

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// ListingsResponse is returned by the list endpoints.
type ListingsResponse struct {
	Listings []listing.Listing `json:"listings"`
	Total    int               `json:"total"`
	Date     string            `json:"date"`
	City     string            `json:"city,omitempty"`
}

// NeighborhoodsResponse is returned by /api/neighborhoods.
type NeighborhoodsResponse struct {
	Neighborhoods []string `json:"neighborhoods"`
	Total         int      `json:"total"`
}

// StatsResponse is returned by /api/stats.
type StatsResponse struct {
	Stats listing.Stats `json:"stats"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

func filterFromQuery(r *http.Request) listing.Filter {
	q := r.URL.Query()
	return listing.Filter{
		Neighborhood:    q.Get("neighborhood"),
		TransactionType: q.Get("type"),
	}
}

// apiListListings returns every listing.
func (s *Server) apiListListings(w http.ResponseWriter, r *http.Request) {
	s.ensureReady(r)

	listings := s.listings.All(r.Context(), filterFromQuery(r))
	apiJSON(w, ListingsResponse{
		Listings: listings,
		Total:    len(listings),
		Date:     s.now().Format(time.RFC3339),
	}, http.StatusOK)
}

// apiListToday returns today's listings.
func (s *Server) apiListToday(w http.ResponseWriter, r *http.Request) {
	s.ensureReady(r)

	listings := s.listings.Today(r.Context(), filterFromQuery(r))
	apiJSON(w, ListingsResponse{
		Listings: listings,
		Total:    len(listings),
		Date:     string(listing.DateOf(s.now())),
		City:     City,
	}, http.StatusOK)
}

// apiGetListing returns one listing.
func (s *Server) apiGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apiError(w, "invalid listing ID", http.StatusBadRequest)
		return
	}

	s.ensureReady(r)

	l, err := s.listings.Get(r.Context(), id)
	if errors.Is(err, listing.ErrNotFound) {
		apiError(w, "listing not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, "loading listing", http.StatusInternalServerError)
		return
	}

	apiJSON(w, l, http.StatusOK)
}

// apiNeighborhoods returns the district gazetteer.
func (s *Server) apiNeighborhoods(w http.ResponseWriter, r *http.Request) {
	names := s.listings.Neighborhoods()
	apiJSON(w, NeighborhoodsResponse{Neighborhoods: names, Total: len(names)}, http.StatusOK)
}

// apiStats returns aggregate counts.
func (s *Server) apiStats(w http.ResponseWriter, r *http.Request) {
	s.ensureReady(r)
	apiJSON(w, StatsResponse{Stats: s.listings.Stats(r.Context())}, http.StatusOK)
}

// apiRefresh runs one refresh cycle synchronously.
func (s *Server) apiRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := s.refresher.RunOnce(r.Context())
	if err != nil {
		slog.Error("manual refresh failed", "error", err)
		apiError(w, "refresh failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	apiJSON(w, res, http.StatusOK)
}

// handleHealth reports liveness and the store state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, HealthResponse{
		Status:    "ok",
		Timestamp: s.now().Format(time.RFC3339),
		Store:     s.ready.State().String(),
	}, http.StatusOK)
}
