// Package common defines shared constants and sentinel errors used across
// client and server layers of the internship recommender. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// File acquisition errors. These surface to the user and never
	// terminate the client; every failure requires a new explicit action.
	ErrMediaAccess         = errors.New("camera access denied or unavailable")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoFileSelected      = errors.New("no file selected")

	// Resume processing errors.
	ErrEmptyResume    = errors.New("resume appears to be empty or too short")
	ErrUnreadableFile = errors.New("could not extract text from file")
)
