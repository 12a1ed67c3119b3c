package user

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"playground-api/internal/common/pagination"
	"playground-api/internal/database"
	"playground-api/internal/handler/http/requestid"
	"playground-api/internal/handler/http/respond"
	"playground-api/internal/observability/logging"
)

// ListHandler serves the paginated user listing.
type ListHandler struct {
	Service       ServiceFactory
	PaginationCfg pagination.Config
	Links         *pagination.LinkBuilder
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters", "error", err.Error())
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pagination.LogRequest(logger, reqID, params)

	handle := database.HandleFrom(ctx)
	if handle == nil {
		logger.Error("no database handle attached to request")
		pagination.RecordError("connection")
		respond.SafeError(w, http.StatusInternalServerError, fmt.Errorf("database handle missing"))
		return
	}
	conn, err := handle.Postgres(ctx)
	if err != nil {
		logger.Error("failed to obtain database connector", "error", err.Error())
		pagination.RecordError("connection")
		respond.SafeError(w, http.StatusServiceUnavailable, err)
		return
	}

	svc := h.Service(conn)
	result, err := svc.ListPaginated(ctx, params)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(result.Users))
	for _, u := range result.Users {
		dtos = append(dtos, fromEntity(u))
	}

	// Metadata is attached only when the query matched something; an empty
	// result set ships a bare data array.
	var meta *pagination.Meta
	if result.Pagination != nil {
		links := h.Links.Build(endpoint, params.Page, params.Size, result.Pagination.TotalPages)
		meta = &pagination.Meta{
			Pagination: result.Pagination,
			Links:      &links,
		}
		pagination.UpdateTotalCount(result.Pagination.TotalRecords)
	}
	response := pagination.NewResponse(dtos, meta)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.LogResponse(logger, reqID, params, len(dtos), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}
