// Package http provides the HTTP handlers and middleware for the web
// application: the database status index, health/readiness/liveness
// endpoints, request metrics, and the middleware chain.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"playground-api/internal/database"
	"playground-api/internal/handler/http/respond"
)

// sessionQuery returns the driver-specific probe that reports the session
// user and database name of a live connection.
func sessionQuery(driver database.Driver) string {
	if driver == database.DriverMySQL {
		return "SELECT current_user() AS session_user, database() AS current_database"
	}
	return "SELECT session_user, current_database()"
}

// StatusResponse is the JSON body of the index endpoint.
type StatusResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Data    StatusData `json:"data"`
}

// StatusData carries one session record per database target, or null when
// the target is unconfigured or unreachable.
type StatusData struct {
	Postgres database.Record `json:"postgres"`
	Oracle   database.Record `json:"oracle"`
}

// StatusHandler handles the index endpoint. It probes each configured
// database target through the request-scoped handle and reports the session
// user and database name per target. An unreachable target yields null
// rather than a request failure.
type StatusHandler struct {
	Manager *database.Manager
	Logger  *slog.Logger
}

func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := database.HandleFrom(ctx)

	data := StatusData{
		Postgres: h.probe(ctx, handle, database.TargetPostgres),
		Oracle:   h.probe(ctx, handle, database.TargetOracle),
	}

	respond.JSON(w, http.StatusOK, StatusResponse{
		Status:  "UP",
		Message: "Success",
		Data:    data,
	})
}

// probe fetches the session record for one target. Failures are logged and
// reported as a null record.
func (h StatusHandler) probe(ctx context.Context, handle database.RequestHandle, target string) database.Record {
	if handle == nil {
		return nil
	}
	conn, err := handle.Connector(ctx, target)
	if err != nil {
		if !errors.Is(err, database.ErrTargetNotConfigured) {
			h.Logger.Warn("failed to connect to target",
				slog.String("target", target),
				slog.Any("error", err))
		}
		return nil
	}

	t, _ := h.Manager.Target(target)
	record, err := conn.FetchOne(ctx, sessionQuery(t.Driver))
	if err != nil {
		h.Logger.Warn("session probe failed",
			slog.String("target", target),
			slog.Any("error", err))
		return nil
	}
	return record
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler performs database connectivity checks and returns detailed
// health status including connection pool statistics.
type HealthHandler struct {
	Manager *database.Manager
	Version string
}

// ServeHTTP returns 200 OK if every check passes, or 503 Service
// Unavailable when any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"database": h.checkDatabase(ctx),
	}

	status := "healthy"
	statusCode := http.StatusOK
	if checks["database"].Status == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkDatabase pings the primary target and reports pool statistics.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	pool, err := h.Manager.Pool(ctx, database.TargetPostgres)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	if err := pool.Ping(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}

	stats := pool.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80.0 {
			return CheckStatus{
				Status:  "degraded",
				Message: "connection pool utilization above 80%",
				Details: details,
			}
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler handles readiness probe requests by verifying the primary
// database accepts connections.
type ReadyHandler struct {
	Manager *database.Manager
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	pool, err := h.Manager.Pool(ctx, database.TargetPostgres)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		http.Error(w, "database not ready: "+respond.Sanitize(err), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles liveness probe requests with a lightweight check that
// the process is responsive.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
