package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Input validation and sanitization utilities

var ownerPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidatePDFFilename accepts only .pdf uploads with a plain file name.
func ValidatePDFFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return fmt.Errorf("File %s is not a PDF file.", name)
	}
	if strings.ContainsAny(name, "\x00\n\r") || filepath.Base(name) != name || strings.Contains(name, "..") {
		return fmt.Errorf("invalid characters in file name %q", name)
	}
	return nil
}

// ValidateJobID validates job ID format (UUID)
func ValidateJobID(id string) error {
	if id == "" {
		return fmt.Errorf("job ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid job ID format")
	}
	return nil
}

// ValidateOwner validates owner names used in the API key table
func ValidateOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("invalid owner format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
