package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajanimaurya/internship-recommender/internal/scraper"
)

type fakeScraper struct {
	listings []scraper.Listing
}

func (f *fakeScraper) ScrapeAll(context.Context) []scraper.Listing { return f.listings }

func TestInternshipService_Seed(t *testing.T) {
	db := testDB(t)
	m := newMemManager()
	sc := &fakeScraper{listings: []scraper.Listing{
		{
			Title: "Backend Developer Intern", Department: "NIC",
			Description: "Work with Python and Flask on citizen services",
			Location:    "Delhi", Duration: "3 months", Source: "aicte",
			ScrapedAt: time.Now(),
		},
		{
			Title: "Policy Research Intern", Department: "NITI Aayog",
			Description: "Research and analysis of government policies",
			Source:      "internshala_govt", ScrapedAt: time.Now(),
		},
	}}
	svc := NewInternshipService(db, m, sc, testLogger())
	ctx := context.Background()

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// skills derived from the description text
	assert.Contains(t, stored[0].RequiredSkills, "Python")
	assert.Contains(t, stored[0].RequiredSkills, "Flask")
	assert.Equal(t, defaultCapacity, stored[0].Capacity)
}

func TestInternshipService_SeedIsIdempotent(t *testing.T) {
	db := testDB(t)
	m := newMemManager()
	sc := &fakeScraper{listings: []scraper.Listing{
		{Title: "Backend Developer Intern", Department: "NIC", ScrapedAt: time.Now()},
	}}
	svc := NewInternshipService(db, m, sc, testLogger())
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	_, err = svc.Seed(ctx)
	require.NoError(t, err)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestInternshipService_Get(t *testing.T) {
	db := testDB(t)
	m := newMemManager()
	svc := NewInternshipService(db, m, &fakeScraper{}, testLogger())
	ctx := context.Background()

	seedPostings(t, m)

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer Intern", got.Title)
}
