package models

import "time"

// Resume records one uploaded resume: where its payload lives in object
// storage and the parsed profile derived from it (stored as JSONB).
type Resume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"storage_key"`
	Parsed     []byte    `json:"-"` // JSON-encoded resume.Data
	UploadedAt time.Time `json:"uploaded_at"`
}
