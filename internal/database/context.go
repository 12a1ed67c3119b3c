package database

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const handleContextKey contextKey = "db_handle"

// WithHandle attaches a request-scoped database handle to the context.
func WithHandle(ctx context.Context, handle RequestHandle) context.Context {
	return context.WithValue(ctx, handleContextKey, handle)
}

// HandleFrom retrieves the request-scoped database handle from the context.
// Returns nil when no handle is attached.
func HandleFrom(ctx context.Context) RequestHandle {
	if handle, ok := ctx.Value(handleContextKey).(RequestHandle); ok {
		return handle
	}
	return nil
}
