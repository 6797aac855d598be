// Package models holds the client-side view of server responses and local
// history records.
package models

import "time"

// Opportunity is one ranked internship as returned by the analysis API.
type Opportunity struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Organization   string   `json:"organization"`
	MatchScore     int      `json:"match_score"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	Duration       string   `json:"duration"`
	ApplyURL       string   `json:"apply_url"`
	Explanation    string   `json:"explanation,omitempty"`
	Recommended    bool     `json:"recommended"`
}

// AnalysisResult is the outcome of analyzing one resume.
type AnalysisResult struct {
	ResumeID      string        `json:"resume_id"`
	Skills        []string      `json:"skills"`
	Summary       string        `json:"summary"`
	Opportunities []Opportunity `json:"opportunities"`
}

// Internship is one stored posting from the public listing endpoint.
type Internship struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`
	Duration   string `json:"duration"`
	Stipend    string `json:"stipend"`
	ApplyURL   string `json:"apply_url"`
}

// AnalysisRecord is one locally stored history entry.
type AnalysisRecord struct {
	ID        int64
	FileName  string
	Summary   string
	TopTitle  string
	TopScore  int
	CreatedAt time.Time
}
