package user

import (
	"log/slog"
	"net/http"

	"playground-api/internal/common/pagination"
)

// Register registers the user directory routes with the given mux.
func Register(mux *http.ServeMux, svc ServiceFactory, paginationCfg pagination.Config, links *pagination.LinkBuilder, logger *slog.Logger) {
	mux.Handle("GET /user", ListHandler{
		Service:       svc,
		PaginationCfg: paginationCfg,
		Links:         links,
		Logger:        logger,
	})
	mux.Handle("POST /user", CreateHandler{
		Service: svc,
		Logger:  logger,
	})
}
