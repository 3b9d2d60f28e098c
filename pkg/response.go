package pkg

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the uniform error body. data is only present when the
// error carries extra context (e.g. validation details).
type errorEnvelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError normalizes err and writes the uniform error envelope. Exactly
// one of WriteError/JSON runs per request — callers return immediately after.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := Normalize(err)
	JSON(w, apiErr.Status, errorEnvelope{Message: apiErr.Message, Data: apiErr.Data})
}

// WriteErrorMessage writes an error envelope with an explicit status, for
// failures detected directly in the HTTP layer.
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorEnvelope{Message: message})
}
