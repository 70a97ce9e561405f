package synth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// ErrNoListings is returned when every strategy in a chain came up empty.
var ErrNoListings = errors.New("no strategy produced listings")

// Strategy is one way of producing a batch of listings.
type Strategy interface {
	Name() string
	Generate(ctx context.Context) ([]listing.Listing, error)
}

// Chain tries strategies in order and returns the first non-empty batch.
type Chain struct {
	strategies []Strategy
}

// NewChain creates a chain over the given strategies.
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Name implements Strategy. It lists the member strategies in order.
func (c *Chain) Name() string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Generate implements Strategy.
func (c *Chain) Generate(ctx context.Context) ([]listing.Listing, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := s.Generate(ctx)
		if err != nil {
			slog.Warn("strategy failed", "strategy", s.Name(), "error", err)
			continue
		}
		if len(batch) == 0 {
			slog.Info("strategy produced nothing", "strategy", s.Name())
			continue
		}

		slog.Info("strategy produced listings", "strategy", s.Name(), "count", len(batch))
		return batch, nil
	}

	return nil, ErrNoListings
}
