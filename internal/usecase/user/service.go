package user

import (
	"context"
	"fmt"

	"playground-api/internal/common/pagination"
	"playground-api/internal/domain/entity"
	"playground-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new user.
type CreateInput struct {
	Username string
	Email    string
}

// Service provides user directory use cases. It decodes raw records into
// typed entities and delegates persistence to the repository.
type Service struct {
	Repo repository.UserRepository
}

// PaginatedResult is one decoded page of users. Pagination metadata is nil
// when the underlying query matched zero rows, and also when the call did
// not request pagination.
type PaginatedResult struct {
	Users      []*entity.User
	Pagination *pagination.Metadata
}

// ListPaginated retrieves one page of users. The repository reports the
// full unpaginated total alongside the page, so no second count query runs.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	result, err := s.Repo.ListPaginated(ctx, params.Page, params.Size)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*entity.User, 0, len(result.Data))
	for _, rec := range result.Data {
		u, err := entity.UserFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("decode user record: %w", err)
		}
		users = append(users, u)
	}

	out := &PaginatedResult{Users: users}
	if result.Paginated() && result.Total > 0 {
		meta := pagination.ComputeMeta(params.Page, params.Size, result.Total)
		out.Pagination = &meta
	}
	return out, nil
}

// Get retrieves one user by ID.
// Returns ErrInvalidUserID if the ID is not positive.
// Returns ErrUserNotFound if no such user exists.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	record, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if record == nil {
		return nil, ErrUserNotFound
	}
	u, err := entity.UserFromRecord(record)
	if err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return u, nil
}

// Create validates the input and inserts a new user.
// Returns a *entity.ValidationError for malformed input.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.User, error) {
	u := &entity.User{
		Username: in.Username,
		Email:    in.Email,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
