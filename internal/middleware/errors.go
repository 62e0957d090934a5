package middleware

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

// WriteError writes {"detail": ..., "status_code": ...} with the given status.
func WriteError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorBody{Detail: detail, StatusCode: status})
}
