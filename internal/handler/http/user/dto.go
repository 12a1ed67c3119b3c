// Package user provides HTTP handlers for the user directory endpoints:
// paginated listing and creation.
package user

import (
	"time"

	"playground-api/internal/database"
	"playground-api/internal/domain/entity"
	userUC "playground-api/internal/usecase/user"
)

// endpoint is the route path used for navigation link generation.
const endpoint = "/user"

// ServiceFactory builds a user service over one request-scoped connector.
// Injected from main so handlers stay decoupled from the concrete
// repository implementation.
type ServiceFactory func(conn database.Connector) userUC.Service

// DTO represents the JSON structure for user data transfer.
type DTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// fromEntity converts a domain user into its transfer representation.
func fromEntity(u *entity.User) DTO {
	return DTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
