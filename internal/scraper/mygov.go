package scraper

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MyGov scrapes the MyGov internship portal.
type MyGov struct {
	BaseURL string
}

func (MyGov) Name() string { return "mygov" }

func (m MyGov) baseURL() string {
	if u := strings.TrimSpace(m.BaseURL); u != "" {
		return strings.TrimRight(u, "/") + "/"
	}
	return "https://www.mygov.in/internship/"
}

func (m MyGov) Fetch(ctx context.Context, c *http.Client) ([]byte, string, error) {
	u := m.baseURL()
	b, err := fetchURL(ctx, c, u)
	return b, u, err
}

func (MyGov) Parse(html []byte, pageURL string) ([]Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, err
	}

	var listings []Listing
	doc.Find(".internship-item, .opportunity, .listing, .card").
		EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= 8 {
				return false
			}
			title := selText(s, ".title, h3, h4")
			if title == "" {
				return true
			}
			listings = append(listings, Listing{
				Title:       title,
				Department:  fallback(selText(s, ".department, .ministry, .organization"), "Government of India"),
				Description: fallback(selText(s, ".desc, .description, .details"), "MyGov internship opportunity"),
				Location:    fallback(selText(s, ".location, .region"), "Various Locations"),
				Duration:    "3-6 months",
				Stipend:     "As per government norms",
				ApplyURL:    pageURL,
				Source:      "mygov",
			})
			return true
		})
	return listings, nil
}

func (MyGov) Samples() []Listing {
	return []Listing{{
		Title:       "Digital India Intern",
		Department:  "Ministry of Electronics and IT",
		Description: "Support Digital India initiatives and campaigns",
		Location:    "New Delhi",
		Duration:    "3 months",
		Stipend:     "20000",
		ApplyURL:    "https://www.mygov.in/internship/",
		Source:      "mygov",
	}}
}
