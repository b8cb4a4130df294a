package validation

import (
	"errors"
)

// ValidatePassword checks the basic password constraints.
// bcrypt silently truncates inputs longer than 72 bytes, so those are
// rejected up front.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	return nil
}
