package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/tacka/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields model.FieldErrors `json:"fields"`
}

// validationError writes the per-field messages of a rejected form.
func validationError(w http.ResponseWriter, errs model.FieldErrors) {
	jsonResponse(w, http.StatusUnprocessableEntity, validationResponse{
		Error:  "validation failed",
		Fields: errs,
	})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
