package models

// Opportunity is one ranked internship in an analysis result.
type Opportunity struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Organization   string   `json:"organization"`
	MatchScore     int      `json:"match_score"` // 0-100
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	Duration       string   `json:"duration"`
	ApplyURL       string   `json:"apply_url"`
	Explanation    string   `json:"explanation,omitempty"`
	Recommended    bool     `json:"recommended"`
}

// AnalysisResult is what the analyze endpoint returns for one resume: the
// skills found, a short summary and the ranked opportunity list.
type AnalysisResult struct {
	ResumeID      string        `json:"resume_id,omitempty"`
	Skills        []string      `json:"skills"`
	Summary       string        `json:"summary"`
	Opportunities []Opportunity `json:"opportunities"`
}
