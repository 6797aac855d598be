// Package rules implements the weighted minimum-requirements engine that
// screens parsed resumes against an internship's requirements. Alongside the
// academic checks it scores affirmative-action factors (rural location,
// social category, attempt number) so allocation can weigh representation.
package rules

import (
	"fmt"
	"strings"

	"github.com/rajanimaurya/internship-recommender/internal/resume"
)

// Criterion weights. They sum to 1.0; each check contributes at most its
// weight to the total score.
const (
	weightCGPA         = 0.15
	weightSkills       = 0.25
	weightExperience   = 0.10
	weightEducation    = 0.08
	weightCompleteness = 0.07
	weightRural        = 0.15
	weightCategory     = 0.12
	weightAttempt      = 0.08
)

// Requirements describes what an internship demands of a candidate.
// Zero values disable the corresponding check.
type Requirements struct {
	MinCGPA          float64  `json:"min_cgpa,omitempty"`
	RequiredSkills   []string `json:"required_skills,omitempty"`
	MinSkillMatch    float64  `json:"min_skill_match,omitempty"` // ratio 0..1, default 0.5
	MinExperience    float64  `json:"min_experience,omitempty"`  // years
	RequiredBranch   string   `json:"required_branch,omitempty"`
	MinCompleteness  float64  `json:"min_completeness,omitempty"` // default 50
	MinScore         float64  `json:"min_score,omitempty"`        // total threshold, default 70
	MinRuralScore    float64  `json:"min_rural_score,omitempty"`  // default 0.3
	MinCategoryScore float64  `json:"min_category_score,omitempty"`
	MinAttemptScore  float64  `json:"min_attempt_score,omitempty"`
}

// CheckResult is the outcome of a single criterion.
type CheckResult struct {
	Passed  bool    `json:"passed"`
	Details string  `json:"details"`
	Score   float64 `json:"score"`

	// Only populated for the skills check.
	FoundSkills   []string `json:"found_skills,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
}

// Report aggregates all criterion results for one candidate.
type Report struct {
	CGPA         CheckResult `json:"cgpa_check"`
	Skills       CheckResult `json:"skills_check"`
	Branch       CheckResult `json:"branch_check"`
	Experience   CheckResult `json:"experience_check"`
	Completeness CheckResult `json:"completeness_check"`
	Rural        CheckResult `json:"rural_location_check"`
	Category     CheckResult `json:"category_check"`
	Attempt      CheckResult `json:"attempt_check"`

	// TotalScore is the weighted sum scaled to 0-100.
	TotalScore float64 `json:"total_score"`
	Passed     bool    `json:"all_checks_passed"`
}

// Breakdown lists every criterion with its name, useful for explanations.
func (r *Report) Breakdown() []struct {
	Name   string
	Result CheckResult
} {
	return []struct {
		Name   string
		Result CheckResult
	}{
		{"cgpa", r.CGPA},
		{"skills", r.Skills},
		{"branch", r.Branch},
		{"experience", r.Experience},
		{"completeness", r.Completeness},
		{"rural_location", r.Rural},
		{"category", r.Category},
		{"attempt", r.Attempt},
	}
}

// AAPScores are the affirmative-action factor scores, each in 0..1.
type AAPScores struct {
	RuralLocation float64 `json:"rural_location"`
	Category      float64 `json:"category"`
	Attempt       float64 `json:"attempt"`
}

// Weightage combines the factors into the affirmative contribution used by
// allocation: 0.2*rural + 0.15*category + 0.1*attempt.
func (a AAPScores) Weightage() float64 {
	return 0.2*a.RuralLocation + 0.15*a.Category + 0.1*a.Attempt
}

// Engine evaluates resumes against requirements.
type Engine struct{}

func New() *Engine { return &Engine{} }

var (
	ruralKeywords = []string{"village", "gramin", "gaon", "rural", "block", "tehsil"}
	urbanKeywords = []string{"city", "metro", "urban", "municipal"}
)

// CheckAAPFactors scores the affirmative-action inputs on the candidate
// profile. Rural locations score 1.0, urban 0.4, everything else counts as
// semi-urban at 0.7. Marginalized categories score higher, and fewer
// allocation attempts score higher.
func (e *Engine) CheckAAPFactors(d *resume.Data) AAPScores {
	scores := AAPScores{RuralLocation: 0.7, Category: 0.5, Attempt: 1.0}

	location := strings.ToLower(d.Location)
	if containsAny(location, ruralKeywords) {
		scores.RuralLocation = 1.0
	} else if containsAny(location, urbanKeywords) {
		scores.RuralLocation = 0.4
	}

	category := strings.ToLower(d.Category)
	switch {
	case strings.Contains(category, "sc") || strings.Contains(category, "st"):
		scores.Category = 1.0
	case strings.Contains(category, "obc"):
		scores.Category = 0.8
	case strings.Contains(category, "general") || strings.Contains(category, "unreserved"):
		scores.Category = 0.6
	}

	switch attempt := d.Attempt; {
	case attempt <= 1:
		scores.Attempt = 1.0
	case attempt == 2:
		scores.Attempt = 0.7
	case attempt == 3:
		scores.Attempt = 0.4
	default:
		scores.Attempt = 0.2
	}

	return scores
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// SkillMatch computes the ratio of required skills found among the resume
// skills. Matching is case-insensitive and bidirectionally partial, so
// "REST API" satisfies a "REST" requirement and vice versa. An empty
// requirement list matches fully.
func SkillMatch(required, have []string) (float64, []string) {
	if len(required) == 0 {
		return 1.0, nil
	}

	var found []string
	for _, req := range required {
		reqLower := strings.ToLower(req)
		for _, skill := range have {
			skillLower := strings.ToLower(skill)
			if strings.Contains(skillLower, reqLower) || strings.Contains(reqLower, skillLower) {
				found = append(found, req)
				break
			}
		}
	}
	return float64(len(found)) / float64(len(required)), found
}

// Check evaluates the resume against req and returns the full report plus
// whether the total score clears the minimum.
func (e *Engine) Check(d *resume.Data, req Requirements) (bool, *Report) {
	r := &Report{}

	aap := e.CheckAAPFactors(d)

	ruralThreshold := defaultIfZero(req.MinRuralScore, 0.3)
	r.Rural.Score = weightRural * aap.RuralLocation
	r.Rural.Passed = aap.RuralLocation >= ruralThreshold
	r.Rural.Details = fmt.Sprintf("rural location score: %.2f", aap.RuralLocation)

	categoryThreshold := defaultIfZero(req.MinCategoryScore, 0.4)
	r.Category.Score = weightCategory * aap.Category
	r.Category.Passed = aap.Category >= categoryThreshold
	r.Category.Details = fmt.Sprintf("category score: %.2f", aap.Category)

	attemptThreshold := defaultIfZero(req.MinAttemptScore, 0.3)
	r.Attempt.Score = weightAttempt * aap.Attempt
	r.Attempt.Passed = aap.Attempt >= attemptThreshold
	r.Attempt.Details = fmt.Sprintf("attempt score: %.2f", aap.Attempt)

	// CGPA: full weight when the minimum is met, otherwise proportional.
	switch {
	case !d.HasCGPA:
		r.CGPA.Details = "CGPA not found in resume"
	case d.CGPA >= req.MinCGPA:
		r.CGPA.Passed = true
		r.CGPA.Score = weightCGPA
		r.CGPA.Details = fmt.Sprintf("CGPA %.2f >= %.2f", d.CGPA, req.MinCGPA)
	default:
		r.CGPA.Details = fmt.Sprintf("CGPA %.2f < %.2f", d.CGPA, req.MinCGPA)
		r.CGPA.Score = weightCGPA * minFloat(d.CGPA/req.MinCGPA, 1.0)
	}

	// Skills.
	if len(req.RequiredSkills) > 0 {
		ratio, found := SkillMatch(req.RequiredSkills, d.AllSkills())
		var missing []string
		for _, s := range req.RequiredSkills {
			if !containsString(found, s) {
				missing = append(missing, s)
			}
		}

		minMatch := defaultIfZero(req.MinSkillMatch, 0.5)
		r.Skills.Passed = ratio >= minMatch
		r.Skills.Details = fmt.Sprintf("found %d/%d required skills", len(found), len(req.RequiredSkills))
		r.Skills.FoundSkills = found
		r.Skills.MissingSkills = missing
		r.Skills.Score = weightSkills * ratio
	} else {
		r.Skills.Passed = true
		r.Skills.Details = "no skills required"
		r.Skills.Score = weightSkills
	}

	// Branch.
	requiredBranch := strings.ToUpper(req.RequiredBranch)
	resumeBranch := strings.ToUpper(d.Branch)
	if requiredBranch != "" {
		if resumeBranch == requiredBranch {
			r.Branch.Passed = true
			r.Branch.Score = weightEducation
			r.Branch.Details = fmt.Sprintf("branch %s matches required %s", resumeBranch, requiredBranch)
		} else {
			shown := resumeBranch
			if shown == "" {
				shown = "not found"
			}
			r.Branch.Details = fmt.Sprintf("branch %s does not match required %s", shown, requiredBranch)
		}
	} else {
		r.Branch.Passed = true
		r.Branch.Score = weightEducation
		r.Branch.Details = "no branch requirement"
	}

	// Experience: proportional credit below the minimum.
	exp := d.Experience.TotalYears
	if exp >= req.MinExperience {
		r.Experience.Passed = true
		r.Experience.Score = weightExperience
		r.Experience.Details = fmt.Sprintf("experience %.1f years >= %.1f years", exp, req.MinExperience)
	} else {
		r.Experience.Details = fmt.Sprintf("experience %.1f years < %.1f years", exp, req.MinExperience)
		if req.MinExperience > 0 {
			r.Experience.Score = weightExperience * minFloat(exp/req.MinExperience, 1.0)
		}
	}

	// Completeness.
	minCompleteness := defaultIfZero(req.MinCompleteness, 50)
	completeness := float64(d.Completeness)
	if completeness >= minCompleteness {
		r.Completeness.Passed = true
		r.Completeness.Score = weightCompleteness
		r.Completeness.Details = fmt.Sprintf("completeness score %.0f >= %.0f", completeness, minCompleteness)
	} else {
		r.Completeness.Details = fmt.Sprintf("completeness score %.0f < %.0f", completeness, minCompleteness)
		r.Completeness.Score = weightCompleteness * minFloat(completeness/minCompleteness, 1.0)
	}

	total := r.CGPA.Score + r.Skills.Score + r.Branch.Score + r.Experience.Score +
		r.Completeness.Score + r.Rural.Score + r.Category.Score + r.Attempt.Score
	r.TotalScore = roundTo(total*100, 2)

	minScore := defaultIfZero(req.MinScore, 70)
	r.Passed = r.TotalScore >= minScore

	return r.Passed, r
}

func defaultIfZero(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func roundTo(v float64, places int) float64 {
	shift := 1.0
	for i := 0; i < places; i++ {
		shift *= 10
	}
	return float64(int64(v*shift+0.5)) / shift
}
