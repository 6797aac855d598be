package scraper

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AICTE scrapes the AICTE national internship portal.
type AICTE struct {
	// BaseURL overrides the portal address, mainly for tests.
	BaseURL string
}

func (AICTE) Name() string { return "aicte" }

func (a AICTE) baseURL() string {
	if u := strings.TrimSpace(a.BaseURL); u != "" {
		return strings.TrimRight(u, "/") + "/"
	}
	return "https://internship.aicte-india.org/"
}

func (a AICTE) Fetch(ctx context.Context, c *http.Client) ([]byte, string, error) {
	u := a.baseURL()
	b, err := fetchURL(ctx, c, u)
	return b, u, err
}

// Parse pulls listings out of the portal landing page. The portal has no
// stable markup contract, so the card selectors are intentionally broad.
func (AICTE) Parse(html []byte, pageURL string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var listings []Listing
	doc.Find(".internship-list, .opportunity-card, .card, .listing-item").
		EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= 10 {
				return false
			}
			title := selText(s, ".title, .internship-title, h3, h4")
			if title == "" || title == "Internship Opportunity" {
				return true
			}
			listings = append(listings, Listing{
				Title:       title,
				Department:  fallback(selText(s, ".organization, .company, .department"), "AICTE Affiliated"),
				Description: fallback(selText(s, ".description, .details, .summary"), "Great learning opportunity through AICTE"),
				Location:    fallback(selText(s, ".location, .place, .city"), "Multiple Locations"),
				Duration:    "2-6 months",
				Stipend:     "As per AICTE norms",
				ApplyURL:    pageURL,
				Source:      "aicte",
			})
			return true
		})
	return listings, nil
}

func (AICTE) Samples() []Listing {
	return []Listing{{
		Title:       "AI and Machine Learning Intern",
		Department:  "AICTE Innovation Cell",
		Description: "Work on AI projects and machine learning algorithms",
		Location:    "Multiple Locations",
		Duration:    "6 months",
		Stipend:     "25000",
		ApplyURL:    "https://internship.aicte-india.org/",
		Source:      "aicte",
	}}
}

// selText returns the trimmed text of the first element matching the
// selector list, or "".
func selText(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
