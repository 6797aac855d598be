// Package models defines the database-backed entities shared by server
// repositories and services.
package models

import "time"

// User is an applicant account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Location     string    `json:"location,omitempty"`
	Category     string    `json:"category,omitempty"`
	Attempt      int       `json:"attempt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
