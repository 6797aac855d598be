package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Internshala scrapes Internshala's government internship category. Listings
// are kept only when the title or company carries a government keyword.
type Internshala struct {
	BaseURL string
}

var govKeywords = []string{"government", "ministry", "department", "govt", "public"}

func (Internshala) Name() string { return "internshala" }

func (i Internshala) pageURL() string {
	if u := strings.TrimSpace(i.BaseURL); u != "" {
		return strings.TrimRight(u, "/") + "/internships/government-internships"
	}
	return "https://internshala.com/internships/government-internships"
}

func (i Internshala) siteRoot() string {
	if u := strings.TrimSpace(i.BaseURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return "https://internshala.com"
}

func (i Internshala) Fetch(ctx context.Context, c *http.Client) ([]byte, string, error) {
	u := i.pageURL()
	b, err := fetchURL(ctx, c, u)
	return b, u, err
}

func (i Internshala) Parse(html []byte, pageURL string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	root := i.siteRoot()

	var listings []Listing
	doc.Find(".internship_meta, .individual_internship, .internship-card").
		EachWithBreak(func(n int, s *goquery.Selection) bool {
			if n >= 6 {
				return false
			}
			title := selText(s, ".profile, .title, h3, h4")
			company := selText(s, ".company_name, .organization")
			if title == "" || !isGovernment(title, company) {
				return true
			}

			applyURL := pageURL
			if href, ok := s.Find("a").First().Attr("href"); ok {
				applyURL = root + href
			}

			listings = append(listings, Listing{
				Title:       title,
				Department:  company,
				Description: fmt.Sprintf("%s at %s through Internshala", title, company),
				Location:    fallback(selText(s, ".location, .place"), "Various Locations"),
				Duration:    "2-6 months",
				Stipend:     fallback(selText(s, ".stipend, .salary"), "As per norms"),
				ApplyURL:    applyURL,
				Source:      "internshala_govt",
			})
			return true
		})
	return listings, nil
}

func isGovernment(title, company string) bool {
	t := strings.ToLower(title)
	c := strings.ToLower(company)
	for _, kw := range govKeywords {
		if strings.Contains(t, kw) || strings.Contains(c, kw) {
			return true
		}
	}
	return false
}

func (Internshala) Samples() []Listing {
	return []Listing{{
		Title:       "Government Policy Research Intern",
		Department:  "NITI Aayog",
		Description: "Research and analysis of government policies",
		Location:    "Remote",
		Duration:    "4 months",
		Stipend:     "18000",
		ApplyURL:    "https://internshala.com",
		Source:      "internshala_govt",
	}}
}
