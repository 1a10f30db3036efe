package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/saverfox/saverfox/internal/shared/apperr"
)

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	StatusCode       int               `json:"statusCode"`
	Message          string            `json:"message"`
	Error            string            `json:"error"`
	Timestamp        string            `json:"timestamp"`
	Path             string            `json:"path"`
	ValidationErrors []ValidationError `json:"validationErrors,omitempty"`
}

// ValidationError is one field-level validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondError maps an application error onto the envelope. Internal
// detail is never echoed to the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)
	status := appErr.Kind.HTTPStatus()

	resp := ErrorResponse{
		StatusCode: status,
		Message:    appErr.Message,
		Error:      http.StatusText(status),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
	}
	for _, f := range appErr.Fields {
		resp.ValidationErrors = append(resp.ValidationErrors, ValidationError{
			Field:   f.Field,
			Message: f.Message,
		})
	}

	respondJSON(w, status, resp)
}

// respondBadRequest is a shorthand for request decoding failures
func respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, apperr.Validation(message))
}

// respondUnauthorized covers the unreachable case where a protected
// handler runs without an authenticated user in context
func respondUnauthorized(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, apperr.Unauthorized("unauthorized"))
}
