package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape returned by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, code int, data interface{}) {
	writeJSON(w, code, Envelope{Success: true, Data: data})
}

func respondDataMessage(w http.ResponseWriter, code int, data interface{}, message string) {
	writeJSON(w, code, Envelope{Success: true, Data: data, Message: message})
}

// respondList always carries a count so clients can tell an empty result
// from a missing one.
func respondList(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, Envelope{Success: false, Error: msg})
}

// respondServerError hides internal failure details behind a generic 500.
func respondServerError(w http.ResponseWriter) {
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
