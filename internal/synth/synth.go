// Package synth fabricates plausible Abidjan real-estate listings and
// chains listing producers into a fallback order.
package synth

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// Synthesizer generates batches of listings for a set of sources.
// It is safe for concurrent use.
type Synthesizer struct {
	mu      sync.Mutex
	rng     *rand.Rand
	now     func() time.Time
	sources []Source
	lastID  int64
	title   cases.Caser
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock replaces time.Now, which drives ids and publication dates.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// WithSources replaces DefaultSources.
func WithSources(sources ...Source) Option {
	return func(s *Synthesizer) {
		s.sources = sources
	}
}

// New creates a Synthesizer seeded from the clock unless WithSeed is given.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		now:     time.Now,
		sources: DefaultSources(),
		title:   cases.Title(language.French),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(s.now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, rand.Uint64()))
	}
	return s
}

// Name implements Strategy.
func (s *Synthesizer) Name() string {
	return "synthesizer"
}

// Generate produces one batch across all sources. A source that fails
// is logged and contributes nothing.
func (s *Synthesizer) Generate(ctx context.Context) ([]listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	base := now.UnixMicro()
	if base <= s.lastID {
		base = s.lastID + 1
	}

	var batch []listing.Listing
	for _, src := range s.sources {
		out, err := s.generateSource(src, base, now)
		if err != nil {
			slog.Error("synthesizing source", "source", src.Name, "error", err)
			continue
		}
		slog.Debug("synthesized listings", "source", src.Name, "count", len(out))
		batch = append(batch, out...)
	}

	for _, l := range batch {
		if l.ID > s.lastID {
			s.lastID = l.ID
		}
	}

	return batch, nil
}

func (s *Synthesizer) generateSource(src Source, base int64, now time.Time) (out []listing.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	if src.MinCount < 0 || src.MaxCount < src.MinCount {
		return nil, fmt.Errorf("invalid count range %d-%d", src.MinCount, src.MaxCount)
	}

	n := between(s.rng, src.MinCount, src.MaxCount)
	out = make([]listing.Listing, 0, n)
	for i := 0; i < n; i++ {
		l, err := s.generateOne(src, base+src.IDOffset+int64(i), now)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Synthesizer) generateOne(src Source, id int64, now time.Time) (listing.Listing, error) {
	r := s.rng

	neighborhood := pick(r, src.neighborhoods())
	tt := pick(r, src.transactionTypes())
	cat, err := LookupCategory(pick(r, src.categories()))
	if err != nil {
		return listing.Listing{}, err
	}

	bedrooms := between(r, cat.MinBedrooms, cat.MaxBedrooms)
	surface := between(r, cat.MinSurface, cat.MaxSurface)

	lo, hi, err := PriceBand(neighborhood, tt)
	if err != nil {
		return listing.Listing{}, err
	}
	basePrice := lo + r.Int64N(hi-lo+1)
	variation := 0.85 + r.Float64()*0.30
	price := int64(float64(basePrice) * float64(surface) / 100 * variation)

	fill := strings.NewReplacer(
		"{n}", strconv.Itoa(bedrooms),
		"{s}", strconv.Itoa(surface),
		"{q}", neighborhood,
		"{label}", cat.Label,
		"{Label}", s.title.String(cat.Label),
	)

	contact := newContact(r)

	return listing.Listing{
		ID:              id,
		Title:           fill.Replace(pick(r, cat.titles)),
		Description:     fill.Replace(pick(r, cat.descriptions)),
		Price:           strconv.FormatInt(price, 10),
		TransactionType: tt,
		Neighborhood:    neighborhood,
		SurfaceArea:     fmt.Sprintf("%d m²", surface),
		BedroomCount:    bedrooms,
		Category:        cat.Name,
		PublicationDate: listing.DateOf(now),
		Source:          src.Name,
		URL:             fmt.Sprintf(src.URLTemplate, id),
		ContactName:     contact.Name,
		ContactPhone:    contact.Phone,
		ContactEmail:    contact.Email,
		ContactWhatsApp: contact.WhatsApp,
	}, nil
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// between returns a uniform int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
