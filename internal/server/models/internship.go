package models

import "time"

// Internship is one opportunity, either scraped from a portal or entered by
// an operator. RequiredSkills is stored as a JSONB column.
type Internship struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Duration       string    `json:"duration"`
	Stipend        string    `json:"stipend"`
	RequiredSkills []string  `json:"required_skills"`
	Capacity       int       `json:"capacity"`
	Allocated      int       `json:"allocated"`
	ApplyURL       string    `json:"apply_url"`
	Source         string    `json:"source"`
	ScrapedAt      time.Time `json:"scraped_date"`
}
