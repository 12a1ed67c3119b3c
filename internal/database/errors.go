package database

import (
	"errors"
	"fmt"
)

// Sentinel errors for database layer operations.
var (
	// ErrTargetNotConfigured indicates that a database target (e.g. the
	// secondary backend) has no configuration and cannot be dialed.
	ErrTargetNotConfigured = errors.New("database target not configured")

	// ErrPoolClosed indicates that the pool has been shut down and can no
	// longer hand out connections.
	ErrPoolClosed = errors.New("connection pool is closed")
)

// ConnectionError indicates that a connection could not be established or
// obtained from the pool (network failure, authentication failure, or pool
// exhaustion past the acquire timeout). The request that observed it fails,
// but the pool itself remains usable for subsequent requests.
type ConnectionError struct {
	Target string // target name, e.g. "postgres"
	Err    error
}

// Error returns a formatted error message for the connection error.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection error (target %q): %v", e.Target, e.Err)
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError indicates that a SQL statement failed to execute. The active
// transaction has already been rolled back by the time the error is returned.
// Query text and parameters are carried so the failure can be reproduced.
type QueryError struct {
	Query string
	Args  []any
	Err   error
}

// Error returns a formatted error message for the query error.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query execution error: %v", e.Err)
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err is (or wraps) a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsQueryError reports whether err is (or wraps) a *QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
