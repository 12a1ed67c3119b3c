package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"playground-api/internal/database"
	"playground-api/internal/domain/entity"
	"playground-api/internal/handler/http/respond"
	"playground-api/internal/observability/logging"
	userUC "playground-api/internal/usecase/user"
)

// CreateRequest is the JSON body accepted by the create endpoint.
type CreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateHandler serves user creation.
type CreateHandler struct {
	Service ServiceFactory
	Logger  *slog.Logger
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	handle := database.HandleFrom(ctx)
	if handle == nil {
		logger.Error("no database handle attached to request")
		respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("database handle missing"))
		return
	}
	conn, err := handle.Postgres(ctx)
	if err != nil {
		logger.Error("failed to obtain database connector", "error", err.Error())
		respond.SafeError(w, http.StatusServiceUnavailable, err)
		return
	}

	svc := h.Service(conn)
	created, err := svc.Create(ctx, userUC.CreateInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			respond.SafeError(w, http.StatusBadRequest, ve)
			return
		}
		logger.Error("failed to create user", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("user created", "username", created.Username)
	respond.JSON(w, http.StatusCreated, fromEntity(created))
}
