package match

import (
	"sort"
	"strings"

	"github.com/rajanimaurya/internship-recommender/internal/resume"
	"github.com/rajanimaurya/internship-recommender/internal/rules"
)

// Weights of the hybrid allocation score. Text similarity dominates, the rule
// engine contributes the structured share, and the affirmative weightage is
// added on top before clamping.
const (
	similarityWeight = 0.6
	rulesWeight      = 0.4
)

// DefaultThreshold is the minimum allocation score (0-100) for a posting to
// be recommended.
const DefaultThreshold = 40.0

// Posting is an internship as seen by the matcher.
type Posting struct {
	ID             int64
	Title          string
	Organization   string
	Description    string
	RequiredSkills []string
	Location       string
	Duration       string
	Capacity       int
	Allocated      int
	ApplyURL       string
	Requirements   rules.Requirements
}

// Result is one scored posting.
type Result struct {
	Posting Posting

	// Score is the final allocation score in 0-100.
	Score          float64
	Similarity     float64
	RuleReport     *rules.Report
	AAP            rules.AAPScores
	Allocated      bool
	MatchedSkills  []string
	Explanation    string
}

// Matcher scores postings against a resume.
type Matcher struct {
	engine    *rules.Engine
	threshold float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the allocation threshold.
func WithThreshold(t float64) Option {
	return func(m *Matcher) { m.threshold = t }
}

func New(opts ...Option) *Matcher {
	m := &Matcher{engine: rules.New(), threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// profileText builds the similarity document for a resume from its skills and
// retained raw text.
func profileText(d *resume.Data) string {
	var b strings.Builder
	for _, skill := range d.AllSkills() {
		b.WriteString(skill)
		b.WriteString(" ")
	}
	if d.Branch != "" {
		b.WriteString(d.Branch)
		b.WriteString(" ")
	}
	b.WriteString(d.RawText)
	return b.String()
}

func postingText(p Posting) string {
	parts := []string{p.Title, p.Organization, p.Description}
	parts = append(parts, p.RequiredSkills...)
	return strings.Join(parts, " ")
}

// capacityFactor discounts postings that are close to full. A posting with no
// declared capacity is not discounted; one at or over capacity bottoms out at
// half weight rather than zero so that it still ranks.
func capacityFactor(p Posting) float64 {
	if p.Capacity <= 0 {
		return 1.0
	}
	remaining := float64(p.Capacity-p.Allocated) / float64(p.Capacity)
	if remaining < 0 {
		remaining = 0
	}
	return 0.5 + 0.5*remaining
}

// Rank scores every posting for the resume and returns results ordered by
// descending score. All postings are returned; callers filter on Allocated
// when they only want recommendations.
func (m *Matcher) Rank(d *resume.Data, postings []Posting) []Result {
	docs := make([]string, 0, len(postings)+1)
	profile := profileText(d)
	docs = append(docs, profile)
	for _, p := range postings {
		docs = append(docs, postingText(p))
	}
	v := NewVectorizer(docs)
	profileVec := v.Vector(profile)

	aap := m.engine.CheckAAPFactors(d)

	results := make([]Result, 0, len(postings))
	for _, p := range postings {
		similarity := Cosine(profileVec, v.Vector(postingText(p)))

		req := p.Requirements
		if len(req.RequiredSkills) == 0 {
			req.RequiredSkills = p.RequiredSkills
		}
		_, report := m.engine.Check(d, req)

		hybrid := similarityWeight*similarity + rulesWeight*(report.TotalScore/100) + aap.Weightage()
		hybrid *= capacityFactor(p)
		if hybrid > 1 {
			hybrid = 1
		}
		score := roundTo(hybrid*100, 2)

		_, matched := rules.SkillMatch(p.RequiredSkills, d.AllSkills())

		results = append(results, Result{
			Posting:       p,
			Score:         score,
			Similarity:    similarity,
			RuleReport:    report,
			AAP:           aap,
			Allocated:     score >= m.threshold,
			MatchedSkills: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(v*shift+0.5)) / shift
}
