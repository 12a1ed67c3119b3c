package entity

import (
	"fmt"
	"net/mail"
)

const (
	maxUsernameLength = 64
	maxEmailLength    = 254
)

// ValidateUsername validates a username against the domain rules.
// Returns a *ValidationError if the username is empty or too long.
func ValidateUsername(username string) error {
	if username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > maxUsernameLength {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must not exceed %d characters", maxUsernameLength),
		}
	}
	return nil
}

// ValidateEmail validates an email address.
// Returns a *ValidationError if the address is empty, too long, or not a
// parseable RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("email must not exceed %d characters", maxEmailLength),
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "email must be a valid address"}
	}
	return nil
}
