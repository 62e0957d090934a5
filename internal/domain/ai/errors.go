package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMissingAPIKey is returned when no provider key is configured.
var ErrMissingAPIKey = errors.New("ai api key is not configured")
