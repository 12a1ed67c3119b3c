// Command api serves the playground HTTP API: a status endpoint that
// probes every configured database target, a paginated user directory,
// and the usual health and metrics plumbing.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"playground-api/internal/common/pagination"
	"playground-api/internal/config"
	"playground-api/internal/database"
	hhttp "playground-api/internal/handler/http"
	"playground-api/internal/handler/http/requestid"
	huser "playground-api/internal/handler/http/user"
	pgRepo "playground-api/internal/infra/adapter/persistence/postgres"
	"playground-api/internal/observability/logging"
	userUC "playground-api/internal/usecase/user"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	manager := database.NewManager(logger, targets(cfg)...)
	defer manager.Close()

	links, err := pagination.NewLinkBuilder(cfg.BaseURL)
	if err != nil {
		logger.Error("invalid base URL", slog.String("base_url", cfg.BaseURL), slog.String("error", err.Error()))
		os.Exit(1)
	}

	mux := buildMux(cfg, manager, links, logger)
	handler := applyMiddleware(mux, cfg, manager, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("app", cfg.AppName),
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func targets(cfg *config.Config) []database.Target {
	ts := make([]database.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		ts = append(ts, t)
	}
	return ts
}

func buildMux(cfg *config.Config, manager *database.Manager, links *pagination.LinkBuilder, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", hhttp.StatusHandler{Manager: manager, Logger: logger})
	mux.Handle("GET /health", &hhttp.HealthHandler{Manager: manager, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Manager: manager})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	huser.Register(mux, func(conn database.Connector) userUC.Service {
		return userUC.Service{Repo: pgRepo.NewUserRepo(conn)}
	}, cfg.Pagination, links, logger)

	return mux
}

// applyMiddleware wraps the mux with the shared middleware chain. Listed
// outermost first: request ID, rate limit, panic recovery, request
// logging, body size limit, per-request database handle, metrics.
func applyMiddleware(mux *http.ServeMux, cfg *config.Config, manager *database.Manager, logger *slog.Logger) http.Handler {
	limiter := hhttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.DatabaseHandle(manager)(handler)
	handler = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = limiter.Middleware(handler)
	handler = requestid.Middleware(handler)
	return handler
}
