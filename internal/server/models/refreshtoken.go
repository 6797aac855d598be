package models

import "time"

// RefreshToken is a server-stored, rotating long-lived credential.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
