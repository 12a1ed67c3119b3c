// Package repository defines the persistence contracts used by the use case
// layer. Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"playground-api/internal/database"
	"playground-api/internal/domain/entity"
)

// UserRepository provides access to the users table.
type UserRepository interface {
	// ListPaginated retrieves one page of users together with the total
	// matching row count. When page and size are both positive the result is
	// limited to that page; otherwise every row is returned.
	ListPaginated(ctx context.Context, page, size int) (*database.PagedResult, error)

	// Get retrieves a single user row by ID as a raw record.
	// Returns (nil, nil) if no such user exists.
	Get(ctx context.Context, id int64) (database.Record, error)

	// Create inserts a new user row.
	Create(ctx context.Context, user *entity.User) error
}
