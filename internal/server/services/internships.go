package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rajanimaurya/internship-recommender/internal/dbx"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/resume"
	"github.com/rajanimaurya/internship-recommender/internal/scraper"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/repomanager"
)

// portalScraper is the part of scraper.Scraper used here.
type portalScraper interface {
	ScrapeAll(ctx context.Context) []scraper.Listing
}

// InternshipService lists postings and re-seeds them from portal scrapes.
type InternshipService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scraper     portalScraper
	logger      logging.Logger
}

func NewInternshipService(db *sql.DB, m repomanager.RepositoryManager, sc portalScraper, logger logging.Logger) *InternshipService {
	return &InternshipService{db: db, repomanager: m, scraper: sc, logger: logger}
}

// List returns every stored posting.
func (s *InternshipService) List(ctx context.Context) ([]*models.Internship, error) {
	repo := s.repomanager.Internships(s.db)
	return repo.List(ctx)
}

// Get returns one posting by ID.
func (s *InternshipService) Get(ctx context.Context, id int64) (*models.Internship, error) {
	repo := s.repomanager.Internships(s.db)
	return repo.GetByID(ctx, id)
}

// Seed scrapes every portal and upserts the listings in one transaction.
// Returns the number of listings stored.
func (s *InternshipService) Seed(ctx context.Context) (int, error) {
	listings := s.scraper.ScrapeAll(ctx)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Internships(tx)
		for _, l := range listings {
			in := &models.Internship{
				Title:          l.Title,
				Department:     l.Department,
				Description:    l.Description,
				Location:       l.Location,
				Duration:       l.Duration,
				Stipend:        l.Stipend,
				RequiredSkills: skillsFromListing(l),
				Capacity:       defaultCapacity,
				ApplyURL:       l.ApplyURL,
				Source:         l.Source,
				ScrapedAt:      l.ScrapedAt,
			}
			if err := repo.Upsert(ctx, in); err != nil {
				return fmt.Errorf("upsert %q: %w", l.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(listings), nil
}

// RunPeriodicSeed re-seeds on the given interval until ctx is cancelled. An
// initial seed runs immediately.
func (s *InternshipService) RunPeriodicSeed(ctx context.Context, interval time.Duration) {
	seed := func() {
		n, err := s.Seed(ctx)
		if err != nil {
			s.logger.Error(ctx, "internship seed failed", "error", err.Error())
			return
		}
		s.logger.Info(ctx, "internships seeded", "count", n)
	}

	seed()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seed()
		}
	}
}

// Scraped listings carry no skill metadata, so the description text is
// scanned with the resume skill extractor to derive required skills.
func skillsFromListing(l scraper.Listing) []string {
	return resume.SkillsInText(l.Title + ". " + l.Description)
}

const defaultCapacity = 10
