package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// errorBody matches the error envelope written by the REST handlers.
type errorBody struct {
	Message    string `json:"message"`
	StatusCode string `json:"statusCode"`
	Details    any    `json:"details"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{ //nolint:errcheck
		Message:    message,
		StatusCode: strconv.Itoa(status),
	})
}
