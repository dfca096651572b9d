package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// maxBodyBytes caps request bodies; every payload here is a handful of strings.
const maxBodyBytes = 1 << 20

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// readJSON decodes the request body into the given destination.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
