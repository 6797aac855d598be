// Package httpapi exposes the server's REST API: auth, internship listings,
// resume analysis, allocation and export. All JSON responses share one
// envelope shape.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, err string) {
	respondJSON(w, status, Envelope{Success: false, Error: err})
}
