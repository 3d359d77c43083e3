package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes:
// missing game -> 404, malformed or rejected input -> 400, operations in
// the wrong lifecycle status -> 409, everything else -> 500
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validation *shared.ValidationError
	var statusErr *shared.GameStatusError
	switch {
	case shared.IsNotFound(err):
		status = http.StatusNotFound
	case errors.As(err, &validation), shared.IsRecoverable(err):
		status = http.StatusBadRequest
	case errors.As(err, &statusErr):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}
