// Package shared centralizes JSON response writing so every handler emits the
// same envelopes: payloads as-is, failures as {"error": "<user-safe message>"}.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "taproom/pkg/domain-errors"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error to its HTTP status and user-safe
// message. Anything that is not a domain error becomes a generic 500 so
// internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Error interno del servidor."

	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		message = de.Message
	}
	WriteJSON(w, status, map[string]string{"error": message})
}
