package scraper

import (
	"context"
	"net/http"
)

// StatePortals stands in for state government portals that publish no
// machine-readable listings. It always serves its curated set.
type StatePortals struct{}

func (StatePortals) Name() string { return "state" }

func (StatePortals) Fetch(context.Context, *http.Client) ([]byte, string, error) {
	return nil, "", nil
}

func (StatePortals) Parse([]byte, string) ([]Listing, error) {
	return nil, nil
}

func (StatePortals) Samples() []Listing {
	return []Listing{
		{
			Title:       "IT Internship Program",
			Department:  "Delhi Government IT Department",
			Description: "IT infrastructure and software development internship",
			Location:    "Delhi",
			Duration:    "3 months",
			Stipend:     "15000",
			ApplyURL:    "https://delhi.gov.in",
			Source:      "delhi_govt",
		},
		{
			Title:       "Education Research Intern",
			Department:  "Kerala Education Department",
			Description: "Research and analysis in education sector",
			Location:    "Kerala",
			Duration:    "4 months",
			Stipend:     "12000",
			ApplyURL:    "https://kerala.gov.in",
			Source:      "kerala_govt",
		},
	}
}
