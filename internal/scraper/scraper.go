// Package scraper collects internship listings from government portals.
// Each portal lives behind the Portal interface so site changes stay inside
// one file; the core flow only depends on the stable Listing shape.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rajanimaurya/internship-recommender/internal/logging"
)

// Listing is one internship opportunity as advertised on a portal.
type Listing struct {
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	Stipend     string    `json:"stipend"`
	ApplyURL    string    `json:"apply_url"`
	Source      string    `json:"source"`
	ScrapedAt   time.Time `json:"scraped_date"`
}

// Portal scrapes one site.
//
// Constraints:
//   - Fetch does no caching or retries; callers control pacing.
//   - Parse must be a pure function of its input HTML.
//   - Samples returns representative fallback listings for when the portal
//     is unreachable or its markup changed.
type Portal interface {
	Name() string
	Fetch(ctx context.Context, c *http.Client) (html []byte, pageURL string, err error)
	Parse(html []byte, pageURL string) ([]Listing, error)
	Samples() []Listing
}

// Registry is a read-only portal lookup keyed by name.
type Registry struct {
	byName map[string]Portal
	order  []string
}

func NewRegistry(portals ...Portal) (Registry, error) {
	byName := make(map[string]Portal, len(portals))
	order := make([]string, 0, len(portals))
	for _, p := range portals {
		if p == nil {
			return Registry{}, errors.New("portal must not be nil")
		}
		name := strings.ToLower(strings.TrimSpace(p.Name()))
		if name == "" {
			return Registry{}, errors.New("portal name must not be empty")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("duplicate portal: %q", name)
		}
		byName[name] = p
		order = append(order, name)
	}
	return Registry{byName: byName, order: order}, nil
}

func (r Registry) Get(name string) (Portal, bool) {
	if r.byName == nil {
		return nil, false
	}
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Names returns portal names in registration order.
func (r Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Default returns the registry with every supported portal.
func Default() Registry {
	r, err := NewRegistry(AICTE{}, MyGov{}, Internshala{}, StatePortals{})
	if err != nil {
		panic(err)
	}
	return r
}

// Scraper runs portals and merges their results.
type Scraper struct {
	registry Registry
	client   *http.Client
	logger   logging.Logger
}

func New(registry Registry, client *http.Client, logger logging.Logger) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Scraper{registry: registry, client: client, logger: logger}
}

// ScrapeAll runs every registered portal. A portal that fails to fetch or
// parse, or that yields nothing, contributes its sample listings instead so
// downstream seeding always has data. Duplicates are removed on
// (title, department), case-insensitive, first occurrence wins.
func (s *Scraper) ScrapeAll(ctx context.Context) []Listing {
	var all []Listing
	for _, name := range s.registry.Names() {
		portal, _ := s.registry.Get(name)
		listings := s.scrapeOne(ctx, portal)
		s.logger.Info(ctx, "portal scraped", "portal", name, "listings", len(listings))
		all = append(all, listings...)
	}
	return Dedupe(all)
}

func (s *Scraper) scrapeOne(ctx context.Context, p Portal) []Listing {
	html, pageURL, err := p.Fetch(ctx, s.client)
	if err != nil {
		s.logger.Warn(ctx, "portal fetch failed, using samples", "portal", p.Name(), "error", err.Error())
		return stamp(p.Samples())
	}
	listings, err := p.Parse(html, pageURL)
	if err != nil || len(listings) == 0 {
		if err != nil {
			s.logger.Warn(ctx, "portal parse failed, using samples", "portal", p.Name(), "error", err.Error())
		}
		return stamp(p.Samples())
	}
	return stamp(listings)
}

func stamp(listings []Listing) []Listing {
	now := time.Now().UTC()
	for i := range listings {
		if listings[i].ScrapedAt.IsZero() {
			listings[i].ScrapedAt = now
		}
	}
	return listings
}

// Dedupe removes listings that repeat an earlier (title, department) pair.
func Dedupe(listings []Listing) []Listing {
	seen := make(map[[2]string]struct{}, len(listings))
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		key := [2]string{strings.ToLower(l.Title), strings.ToLower(l.Department)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const maxBodyBytes = 4 << 20

func fetchURL(ctx context.Context, c *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
