// Package scrape collects listings from classified-ad sites by following
// category pages to individual ads. Extraction is best effort: pages that
// do not match the expected patterns simply produce nothing.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// DefaultStartURLs are the Tonkro.ci real-estate category pages.
var DefaultStartURLs = []string{
	"https://tonkro.ci/categorie/immobilier/vente-maison-villa",
	"https://tonkro.ci/categorie/immobilier/location-maison-villa",
	"https://tonkro.ci/categorie/immobilier/vente-appartement",
	"https://tonkro.ci/categorie/immobilier/location-appartement",
}

var (
	titleSelectors       = []string{"h1", ".title", ".ad-title"}
	descriptionSelectors = []string{".description", ".ad-description", "p"}
	priceSelectors       = []string{".price", ".prix", ".cost", ".amount"}
	nameSelectors        = []string{".contact-name", ".advertiser-name", ".seller-name", ".author"}
)

// Config controls a Source.
type Config struct {
	StartURLs   []string
	SourceName  string
	MaxPerPage  int
	RandomDelay time.Duration
	Timeout     time.Duration
}

// Source scrapes ads from category pages.
type Source struct {
	cfg Config
	now func() time.Time
}

// New creates a Source, filling unset fields with defaults.
func New(cfg Config) *Source {
	if len(cfg.StartURLs) == 0 {
		cfg.StartURLs = DefaultStartURLs
	}
	if cfg.SourceName == "" {
		cfg.SourceName = "Tonkro.ci"
	}
	if cfg.MaxPerPage <= 0 {
		cfg.MaxPerPage = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Source{cfg: cfg, now: time.Now}
}

// Name implements synth.Strategy.
func (s *Source) Name() string {
	return "scrape:" + s.cfg.SourceName
}

// Generate visits every start URL and returns the ads that carried a
// phone number or an email address.
func (s *Source) Generate(ctx context.Context) ([]listing.Listing, error) {
	c, err := s.collector()
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		out      []listing.Listing
		perPage  = map[string]int{}
		failures int
	)
	base := s.now().UnixMicro()

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		slog.Debug("scrape request", "url", r.URL.String())
	})

	c.OnError(func(r *colly.Response, err error) {
		mu.Lock()
		failures++
		mu.Unlock()
		slog.Warn("scrape request failed", "url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if isAdPage(e.Request.URL.Path) {
			return
		}
		href := e.Request.AbsoluteURL(e.Attr("href"))
		if href == "" || !strings.Contains(href, "/annonce/") {
			return
		}

		page := e.Request.URL.String()
		mu.Lock()
		if perPage[page] >= s.cfg.MaxPerPage {
			mu.Unlock()
			return
		}
		perPage[page]++
		mu.Unlock()

		if err := e.Request.Visit(href); err != nil {
			slog.Debug("skipping ad link", "url", href, "error", err)
		}
	})

	c.OnHTML("html", func(e *colly.HTMLElement) {
		if !isAdPage(e.Request.URL.Path) {
			return
		}

		mu.Lock()
		defer mu.Unlock()

		l, ok := s.parseAd(e, base+int64(len(out)))
		if !ok {
			slog.Debug("ad without contact dropped", "url", e.Request.URL.String())
			return
		}
		out = append(out, l)
	})

	for _, u := range s.cfg.StartURLs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := c.Visit(u); err != nil {
			slog.Warn("scrape start page failed", "url", u, "error", err)
		}
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("scrape finished", "source", s.cfg.SourceName, "listings", len(out), "failures", failures)
	return out, nil
}

func (s *Source) collector() (*colly.Collector, error) {
	c := colly.NewCollector(colly.MaxDepth(2))
	c.SetRequestTimeout(s.cfg.Timeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		RandomDelay: s.cfg.RandomDelay,
	}); err != nil {
		return nil, fmt.Errorf("setting scrape limit rule: %w", err)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return c, nil
}

// parseAd builds a listing from an ad page. It reports false when the
// page has neither a phone number nor an email address.
func (s *Source) parseAd(e *colly.HTMLElement, id int64) (listing.Listing, bool) {
	text := e.DOM.Text()

	phone := extractPhone(text)
	email := extractEmail(text)
	if phone == "" && email == "" {
		return listing.Listing{}, false
	}

	title := firstText(e, titleSelectors)
	description := firstText(e, descriptionSelectors)

	price := parsePrice(firstText(e, priceSelectors))
	if price == "" {
		price = parsePrice(text)
	}

	name := firstText(e, nameSelectors)
	if name == "" {
		name = "Propriétaire"
	}
	if title == "" {
		title = "Annonce immobilière"
	}

	summary := title + " " + description

	return listing.Listing{
		ID:              id,
		Title:           title,
		Description:     description,
		Price:           price,
		TransactionType: detectTransactionType(summary),
		Neighborhood:    detectNeighborhood(summary),
		SurfaceArea:     extractSurface(description),
		BedroomCount:    extractBedrooms(description),
		Category:        detectCategory(title),
		PublicationDate: listing.DateOf(s.now()),
		Source:          s.cfg.SourceName,
		URL:             e.Request.URL.String(),
		ContactName:     name,
		ContactPhone:    phone,
		ContactEmail:    email,
		ContactWhatsApp: strings.TrimPrefix(phone, "+"),
	}, true
}

func firstText(e *colly.HTMLElement, selectors []string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(e.DOM.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func isAdPage(path string) bool {
	return strings.Contains(path, "/annonce/")
}
