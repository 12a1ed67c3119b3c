package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground-api/internal/database"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sessionConnector answers the session probe with a canned record.
type sessionConnector struct {
	record database.Record
	err    error
}

func (c *sessionConnector) Execute(ctx context.Context, query string, args ...any) error {
	return c.err
}

func (c *sessionConnector) FetchOne(ctx context.Context, query string, args ...any) (database.Record, error) {
	return c.record, c.err
}

func (c *sessionConnector) FetchMany(ctx context.Context, query string, size int, args ...any) (database.RecordSet, error) {
	return nil, c.err
}

func (c *sessionConnector) FetchAll(ctx context.Context, query string, args []any, page, pageSize int) (*database.PagedResult, error) {
	return nil, c.err
}

func (c *sessionConnector) Ping(ctx context.Context) error      { return c.err }
func (c *sessionConnector) Reconnect(ctx context.Context) error { return c.err }
func (c *sessionConnector) Close()                              {}

// targetHandle maps target names to connectors; unknown targets report
// ErrTargetNotConfigured like the real handle.
type targetHandle struct {
	conns map[string]database.Connector
}

func (h *targetHandle) Postgres(ctx context.Context) (database.Connector, error) {
	return h.Connector(ctx, database.TargetPostgres)
}

func (h *targetHandle) Oracle(ctx context.Context) (database.Connector, error) {
	return h.Connector(ctx, database.TargetOracle)
}

func (h *targetHandle) Connector(ctx context.Context, name string) (database.Connector, error) {
	conn, ok := h.conns[name]
	if !ok {
		return nil, database.ErrTargetNotConfigured
	}
	return conn, nil
}

func (h *targetHandle) Close() {}

func TestStatusHandler(t *testing.T) {
	tests := []struct {
		name         string
		handle       database.RequestHandle
		wantPostgres bool
		wantOracle   bool
	}{
		{
			name: "both targets reachable",
			handle: &targetHandle{conns: map[string]database.Connector{
				database.TargetPostgres: &sessionConnector{record: database.Record{
					"session_user": "app", "current_database": "playground",
				}},
				database.TargetOracle: &sessionConnector{record: database.Record{
					"session_user": "app", "current_database": "playground_secondary",
				}},
			}},
			wantPostgres: true,
			wantOracle:   true,
		},
		{
			name: "oracle unconfigured",
			handle: &targetHandle{conns: map[string]database.Connector{
				database.TargetPostgres: &sessionConnector{record: database.Record{
					"session_user": "app", "current_database": "playground",
				}},
			}},
			wantPostgres: true,
		},
		{
			name: "probe failure reported as null",
			handle: &targetHandle{conns: map[string]database.Connector{
				database.TargetPostgres: &sessionConnector{
					err: &database.ConnectionError{Target: "postgres"},
				},
			}},
		},
		{
			name: "no handle attached",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := database.NewManager(discardLogger(),
				database.Target{Name: database.TargetPostgres, Driver: database.DriverPostgres})
			h := StatusHandler{Manager: manager, Logger: discardLogger()}

			r := httptest.NewRequest("GET", "/", nil)
			if tt.handle != nil {
				r = r.WithContext(database.WithHandle(r.Context(), tt.handle))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code)

			var body StatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "UP", body.Status)
			assert.Equal(t, "Success", body.Message)
			assert.Equal(t, tt.wantPostgres, body.Data.Postgres != nil)
			assert.Equal(t, tt.wantOracle, body.Data.Oracle != nil)

			if tt.wantPostgres {
				assert.Equal(t, "app", body.Data.Postgres["session_user"])
			}
		})
	}
}

func TestHealthHandlerUnreachableDatabase(t *testing.T) {
	// A manager with no configured targets cannot dial the primary pool, so
	// the database check must fail.
	manager := database.NewManager(discardLogger())
	h := &HealthHandler{Manager: manager, Version: "test"}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["database"].Status)
	assert.Equal(t, "test", body.Version)
}

func TestReadyHandlerNotReady(t *testing.T) {
	manager := database.NewManager(discardLogger())
	h := &ReadyHandler{Manager: manager}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLiveHandler(t *testing.T) {
	h := &LiveHandler{}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alive", w.Body.String())
}

func TestSessionQuery(t *testing.T) {
	assert.Equal(t, "SELECT session_user, current_database()",
		sessionQuery(database.DriverPostgres))
	assert.Contains(t, sessionQuery(database.DriverMySQL), "current_user()")
}
