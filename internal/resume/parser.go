// Package resume parses uploaded resumes: it extracts plain text from PDF,
// DOCX and plain-text payloads and derives structured candidate data (skills,
// CGPA, branch, contact details, experience, education) used by the rule
// engine and the matcher.
package resume

import (
	"fmt"
	"strings"

	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// Minimum amount of extracted text for a resume to be considered parseable.
const minTextLength = 50

// How much raw text is retained on Data for downstream similarity scoring.
const rawTextLimit = 1000

// Contact holds contact details found in the resume text.
type Contact struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Experience summarizes work history found in the resume text.
type Experience struct {
	TotalYears float64  `json:"total_years"`
	Companies  []string `json:"companies,omitempty"`
}

// Data is the structured result of parsing one resume.
type Data struct {
	CGPA         float64             `json:"cgpa,omitempty"`
	HasCGPA      bool                `json:"has_cgpa"`
	Skills       map[string][]string `json:"skills"`
	Branch       string              `json:"branch,omitempty"`
	Contact      Contact             `json:"contact"`
	Experience   Experience          `json:"experience"`
	Education    []string            `json:"education,omitempty"`
	Completeness int                 `json:"completeness_score"`
	RawText      string              `json:"raw_text"`

	// Affirmative-action inputs, supplied by the applicant profile rather
	// than parsed from text.
	Location string `json:"location,omitempty"`
	Category string `json:"category,omitempty"`
	Attempt  int    `json:"attempt,omitempty"`
}

// AllSkills flattens the categorized skill map into a single list.
func (d *Data) AllSkills() []string {
	var out []string
	for _, skills := range d.Skills {
		out = append(out, skills...)
	}
	return out
}

// Parse extracts text from the payload and derives all structured fields.
// Payloads whose text is shorter than minTextLength fail with ErrEmptyResume.
func Parse(mimeType string, payload []byte) (*Data, error) {
	text, err := ExtractText(mimeType, payload)
	if err != nil {
		return nil, fmt.Errorf("text extraction: %w", err)
	}
	return ParseText(text)
}

// ParseText derives structured resume data from already-extracted text.
func ParseText(text string) (*Data, error) {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, common.ErrEmptyResume
	}

	d := &Data{Attempt: 1}

	d.CGPA, d.HasCGPA = extractCGPA(text)
	d.Skills = extractSkills(text)
	d.Branch = extractBranch(text)
	d.Contact.Email = extractEmail(text)
	d.Contact.Phone = extractPhone(text)
	d.Experience.TotalYears, d.Experience.Companies = extractExperience(text)
	d.Education = extractEducation(text)
	d.Completeness = completenessScore(d)

	if len(text) > rawTextLimit {
		d.RawText = text[:rawTextLimit] + "..."
	} else {
		d.RawText = text
	}

	return d, nil
}

// completenessScore weighs how many sections the parser managed to find.
// The scale is 0-100.
func completenessScore(d *Data) int {
	score := 0
	if d.HasCGPA {
		score += 15
	}
	if len(d.Skills) > 0 {
		score += 25
	}
	if d.Branch != "" {
		score += 10
	}
	if d.Contact.Email != "" {
		score += 10
	}
	if d.Contact.Phone != "" {
		score += 10
	}
	if d.Experience.TotalYears > 0 {
		score += 15
	}
	if len(d.Education) > 0 {
		score += 15
	}
	return score
}
