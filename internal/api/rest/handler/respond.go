package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dtroode/signup-server/internal/model"
)

// errorResponse is the uniform envelope for every failure response.
type errorResponse struct {
	Path             string            `json:"path"`
	Timestamp        int64             `json:"timestamp"`
	Message          string            `json:"message"`
	ValidationErrors model.FieldErrors `json:"validationErrors,omitempty"`
}

func newErrorResponse(path, message string, validationErrors model.FieldErrors) errorResponse {
	return errorResponse{
		Path:             path,
		Timestamp:        time.Now().UnixMilli(),
		Message:          message,
		ValidationErrors: validationErrors,
	}
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
