// Package entity defines the core domain entities and validation logic for
// the application, along with typed decoding from raw database records.
package entity

import (
	"fmt"
	"time"

	"playground-api/internal/database"
)

// User represents a user account row in the system.
type User struct {
	ID        int64
	Username  string
	Email     string
	CreatedAt time.Time
}

// Validate checks the user's fields against the domain rules.
// Returns a *ValidationError for the first offending field.
func (u *User) Validate() error {
	if err := ValidateUsername(u.Username); err != nil {
		return err
	}
	return ValidateEmail(u.Email)
}

// UserFromRecord decodes a raw database record into a User. Each required
// field is validated and extracted explicitly; decoding fails with a
// *ValidationError naming the first offending field.
func UserFromRecord(rec database.Record) (*User, error) {
	if rec == nil {
		return nil, &ValidationError{Field: "record", Message: "record is required"}
	}

	id, err := recordInt64(rec, "id")
	if err != nil {
		return nil, err
	}
	username, err := recordString(rec, "username")
	if err != nil {
		return nil, err
	}
	email, err := recordString(rec, "email")
	if err != nil {
		return nil, err
	}
	createdAt, err := recordTime(rec, "created_at")
	if err != nil {
		return nil, err
	}

	return &User{
		ID:        id,
		Username:  username,
		Email:     email,
		CreatedAt: createdAt,
	}, nil
}

// recordInt64 extracts a required integer column from the record.
func recordInt64(rec database.Record, field string) (int64, error) {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return 0, &ValidationError{Field: field, Message: "field is required"}
	}
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("expected integer, got %T", raw)}
	}
}

// recordString extracts a required text column from the record.
func recordString(rec database.Record, field string) (string, error) {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return "", &ValidationError{Field: field, Message: "field is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("expected string, got %T", raw)}
	}
	return s, nil
}

// recordTime extracts a required timestamp column from the record.
// Textual timestamps are accepted in RFC 3339 form.
func recordTime(rec database.Record, field string) (time.Time, error) {
	raw, ok := rec[field]
	if !ok || raw == nil {
		return time.Time{}, &ValidationError{Field: field, Message: "field is required"}
	}
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, &ValidationError{Field: field, Message: "expected RFC 3339 timestamp"}
		}
		return t, nil
	default:
		return time.Time{}, &ValidationError{Field: field, Message: fmt.Sprintf("expected timestamp, got %T", raw)}
	}
}
