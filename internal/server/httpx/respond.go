package httpx

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage sends {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeValidationError sends a 400 with the summary and per-field details.
func writeValidationError(w http.ResponseWriter, msg string, fields map[string]string) {
	payload := map[string]any{"error": msg}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	writeJSON(w, http.StatusBadRequest, payload)
}
