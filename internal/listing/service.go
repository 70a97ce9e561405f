package listing

import (
	"context"
	"errors"
	"log/slog"
	"sort"
)

// ServiceOptions configures read behaviour.
type ServiceOptions struct {
	// TodayFallback returns the full unfiltered set when no row is dated today.
	TodayFallback bool
	// Neighborhoods is the gazetteer served by Neighborhoods.
	Neighborhoods []string
}

// Service provides API-shaped reads. Apart from Get's not-found outcome,
// storage errors are logged and turned into empty results.
type Service struct {
	repo *Repository
	opts ServiceOptions
}

// NewService creates a listing service.
func NewService(repo *Repository, opts ServiceOptions) *Service {
	return &Service{repo: repo, opts: opts}
}

// All returns every listing matching f.
func (s *Service) All(ctx context.Context, f Filter) []Listing {
	listings, err := s.repo.ListAll(ctx, f)
	if err != nil {
		slog.Error("listing all", "error", err)
		return []Listing{}
	}
	return withPlaceholders(listings)
}

// Today returns listings published today matching f. When TodayFallback
// is set and nothing at all is dated today, the full unfiltered set is
// returned instead. A filter that excludes today's rows yields an empty
// result, not the fallback.
func (s *Service) Today(ctx context.Context, f Filter) []Listing {
	listings, err := s.repo.ListToday(ctx, f)
	if err != nil {
		slog.Error("listing today", "error", err)
		return []Listing{}
	}

	if len(listings) == 0 && s.opts.TodayFallback {
		n, err := s.repo.CountToday(ctx)
		if err != nil {
			slog.Error("counting today", "error", err)
			return []Listing{}
		}
		if n == 0 {
			slog.Debug("no listings today, falling back to all")
			return s.All(ctx, Filter{})
		}
	}

	return withPlaceholders(listings)
}

// Get returns one listing. A missing listing yields an error wrapping
// ErrNotFound; any other failure is logged and also reported as not found.
func (s *Service) Get(ctx context.Context, id int64) (Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("getting listing", "id", id, "error", err)
		}
		return Listing{}, ErrNotFound
	}
	return l.WithPlaceholder(), nil
}

// Stats returns the aggregate counts, or all zeros if they cannot be computed.
func (s *Service) Stats(ctx context.Context) Stats {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		slog.Error("computing stats", "error", err)
		return Stats{}
	}
	return st
}

// Neighborhoods returns the gazetteer sorted by name.
func (s *Service) Neighborhoods() []string {
	names := append([]string(nil), s.opts.Neighborhoods...)
	sort.Strings(names)
	return names
}

func withPlaceholders(listings []Listing) []Listing {
	out := make([]Listing, len(listings))
	for i, l := range listings {
		out[i] = l.WithPlaceholder()
	}
	return out
}
