package validation

import (
	"errors"
	"strings"
)

// ValidateUsername validates the human-readable handle.
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)

	if trimmed == "" {
		return errors.New("username is required")
	}

	if len(trimmed) > 20 {
		return errors.New("username is too long (max 20 characters)")
	}

	return nil
}
