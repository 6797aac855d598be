package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rajanimaurya/internship-recommender/internal/common"
	"github.com/rajanimaurya/internship-recommender/internal/dbx"
	"github.com/rajanimaurya/internship-recommender/internal/logging"
	"github.com/rajanimaurya/internship-recommender/internal/match"
	"github.com/rajanimaurya/internship-recommender/internal/resume"
	"github.com/rajanimaurya/internship-recommender/internal/server/models"
	"github.com/rajanimaurya/internship-recommender/internal/server/repositories/repomanager"
)

// resumeStore abstracts StorageService for tests.
type resumeStore interface {
	Store(ctx context.Context, contentType string, payload []byte) (string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

// RecommendService runs the full analysis pipeline: extract and parse a
// resume, persist it, rank the stored postings against it and explain the
// top matches.
type RecommendService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     resumeStore
	matcher     *match.Matcher
	explainer   match.Explainer
	publisher   EventPublisher
	logger      logging.Logger
}

func NewRecommendService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	storage resumeStore,
	matcher *match.Matcher,
	explainer match.Explainer,
	publisher EventPublisher,
	logger logging.Logger,
) *RecommendService {
	if explainer == nil {
		explainer = match.TemplateExplainer{}
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &RecommendService{
		db:          db,
		repomanager: m,
		storage:     storage,
		matcher:     matcher,
		explainer:   explainer,
		publisher:   publisher,
		logger:      logger,
	}
}

// How many top-ranked postings get a per-match explanation.
const explainTop = 5

// Analyze runs the pipeline for one uploaded resume. The applicant profile
// (location, category, attempt) comes from the stored user record. The
// payload is persisted to object storage and the parse result to the
// resumes table before ranking.
func (s *RecommendService) Analyze(ctx context.Context, user *models.User, fileName, mimeType string, payload []byte) (*models.AnalysisResult, error) {
	if !common.IsAllowedMIME(mimeType) {
		return nil, common.ErrUnsupportedFileType
	}

	data, err := resume.Parse(mimeType, payload)
	if err != nil {
		return nil, err
	}
	data.Location = user.Location
	data.Category = user.Category
	data.Attempt = user.Attempt

	storageKey, err := s.storage.Store(ctx, mimeType, payload)
	if err != nil {
		// analysis can proceed without durable payload storage
		s.logger.Warn(ctx, "resume payload not stored", "error", err.Error())
	}

	parsed, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal parsed resume: %w", err)
	}

	rec := &models.Resume{
		UserID:     user.ID,
		FileName:   fileName,
		MimeType:   mimeType,
		Size:       int64(len(payload)),
		StorageKey: storageKey,
		Parsed:     parsed,
	}
	repo := s.repomanager.Resumes(s.db)
	if rec, err = repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	result, err := s.rank(ctx, data)
	if err != nil {
		return nil, err
	}
	result.ResumeID = rec.ID
	return result, nil
}

// Reanalyze re-runs ranking for the user's most recent stored resume without
// requiring a fresh upload.
func (s *RecommendService) Reanalyze(ctx context.Context, user *models.User) (*models.AnalysisResult, error) {
	repo := s.repomanager.Resumes(s.db)
	rec, err := repo.GetLatestByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	data := &resume.Data{}
	if err := json.Unmarshal(rec.Parsed, data); err != nil {
		return nil, fmt.Errorf("unmarshal parsed resume: %w", err)
	}
	data.Location = user.Location
	data.Category = user.Category
	data.Attempt = user.Attempt

	result, err := s.rank(ctx, data)
	if err != nil {
		return nil, err
	}
	result.ResumeID = rec.ID
	return result, nil
}

func (s *RecommendService) rank(ctx context.Context, data *resume.Data) (*models.AnalysisResult, error) {
	repo := s.repomanager.Internships(s.db)
	stored, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	postings := make([]match.Posting, 0, len(stored))
	for _, in := range stored {
		postings = append(postings, match.Posting{
			ID:             in.ID,
			Title:          in.Title,
			Organization:   in.Department,
			Description:    in.Description,
			RequiredSkills: in.RequiredSkills,
			Location:       in.Location,
			Duration:       in.Duration,
			Capacity:       in.Capacity,
			Allocated:      in.Allocated,
			ApplyURL:       in.ApplyURL,
		})
	}

	results := s.matcher.Rank(data, postings)

	opportunities := make([]models.Opportunity, 0, len(results))
	for i, r := range results {
		explanation := ""
		if i < explainTop {
			var err error
			explanation, err = s.explainer.ExplainMatch(ctx, r)
			if err != nil {
				s.logger.Warn(ctx, "match explanation failed", "internship_id", r.Posting.ID, "error", err.Error())
			}
		}
		opportunities = append(opportunities, models.Opportunity{
			ID:             r.Posting.ID,
			Title:          r.Posting.Title,
			Organization:   r.Posting.Organization,
			MatchScore:     int(r.Score + 0.5),
			RequiredSkills: r.Posting.RequiredSkills,
			Location:       r.Posting.Location,
			Duration:       r.Posting.Duration,
			ApplyURL:       r.Posting.ApplyURL,
			Explanation:    explanation,
			Recommended:    r.Allocated,
		})
	}

	return &models.AnalysisResult{
		Skills:        sortedSkills(data),
		Summary:       summarize(data, opportunities),
		Opportunities: opportunities,
	}, nil
}

// ResumeDownloadURL mints a presigned download link for the user's most
// recent stored resume payload. Resumes whose payload never reached object
// storage have no link.
func (s *RecommendService) ResumeDownloadURL(ctx context.Context, user *models.User) (string, error) {
	repo := s.repomanager.Resumes(s.db)
	rec, err := repo.GetLatestByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if rec.StorageKey == "" {
		return "", common.ErrNotFound
	}
	return s.storage.GetPresignedGetURL(ctx, rec.StorageKey)
}

// Allocate records that the user accepted a recommended posting: the
// posting's allocated count is incremented transactionally and an allocation
// event is published.
func (s *RecommendService) Allocate(ctx context.Context, user *models.User, internshipID int64, matchScore int) error {
	var in *models.Internship
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Internships(tx)
		var err error
		if in, err = repo.GetByID(ctx, internshipID); err != nil {
			return err
		}
		return repo.IncrementAllocated(ctx, internshipID)
	})
	if err != nil {
		return err
	}

	ev := AllocationEvent{
		UserID:       user.ID,
		InternshipID: internshipID,
		Title:        in.Title,
		Organization: in.Department,
		MatchScore:   matchScore,
		AllocatedAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishAllocation(ctx, ev); err != nil {
		// allocation stands even when the event bus is down
		s.logger.Warn(ctx, "allocation event not published", "error", err.Error())
	}
	return nil
}

func sortedSkills(d *resume.Data) []string {
	skills := d.AllSkills()
	sort.Strings(skills)
	return skills
}

func summarize(d *resume.Data, opportunities []models.Opportunity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile completeness %d/100.", d.Completeness)
	if d.HasCGPA {
		fmt.Fprintf(&b, " CGPA %.2f.", d.CGPA)
	}
	if d.Branch != "" {
		fmt.Fprintf(&b, " Branch %s.", d.Branch)
	}
	if n := len(d.AllSkills()); n > 0 {
		fmt.Fprintf(&b, " %d skills detected.", n)
	}

	recommended := 0
	for _, o := range opportunities {
		if o.Recommended {
			recommended++
		}
	}
	fmt.Fprintf(&b, " %d of %d internships recommended.", recommended, len(opportunities))
	return b.String()
}
