// Package postgres implements the repository contracts on top of the
// pooled database connector for the primary PostgreSQL target.
package postgres

import (
	"context"
	"fmt"

	"playground-api/internal/database"
	"playground-api/internal/domain/entity"
	"playground-api/internal/repository"
)

type UserRepo struct {
	conn database.Connector
}

// NewUserRepo creates a user repository bound to one request-scoped
// connector.
func NewUserRepo(conn database.Connector) repository.UserRepository {
	return &UserRepo{conn: conn}
}

// ListPaginated retrieves one page of users plus the total row count via the
// connector's window-count rewrite. Rows are ordered by id so pages are
// stable between requests.
func (repo *UserRepo) ListPaginated(ctx context.Context, page, size int) (*database.PagedResult, error) {
	const query = `
SELECT id, username, email, created_at
FROM users
ORDER BY id`
	result, err := repo.conn.FetchAll(ctx, query, nil, page, size)
	if err != nil {
		return nil, fmt.Errorf("ListPaginated: %w", err)
	}
	return result, nil
}

// Get retrieves a single user row by ID.
func (repo *UserRepo) Get(ctx context.Context, id int64) (database.Record, error) {
	const query = `
SELECT id, username, email, created_at
FROM users
WHERE id = $1`
	record, err := repo.conn.FetchOne(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return record, nil
}

// Create inserts a new user row.
func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	const query = `
INSERT INTO users (username, email, created_at)
VALUES ($1, $2, now())`
	if err := repo.conn.Execute(ctx, query, user.Username, user.Email); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
