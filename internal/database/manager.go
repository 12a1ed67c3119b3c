package database

import (
	"context"
	"log/slog"
	"sync"
)

// Well-known target names. The secondary target keeps the original
// deployment's "oracle" name even though it speaks whichever wire protocol
// its configured driver provides.
const (
	TargetPostgres = "postgres"
	TargetOracle   = "oracle"
)

// Manager owns one lazily created connection pool per configured target.
// Pools outlive requests; request-scoped access goes through a Handle.
type Manager struct {
	logger  *slog.Logger
	targets map[string]Target

	mu    sync.Mutex
	pools map[string]*Pool

	// openPool is swappable in tests to avoid dialing a real database.
	openPool func(ctx context.Context, target Target, logger *slog.Logger) (*Pool, error)
}

// NewManager creates a manager for the given targets. No pool is dialed
// until a target is first used.
func NewManager(logger *slog.Logger, targets ...Target) *Manager {
	byName := make(map[string]Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}
	return &Manager{
		logger:   logger,
		targets:  byName,
		pools:    make(map[string]*Pool),
		openPool: NewPool,
	}
}

// Pool returns the pool for the named target, dialing it on first use.
func (m *Manager) Pool(ctx context.Context, name string) (*Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pool, ok := m.pools[name]; ok {
		return pool, nil
	}
	target, ok := m.targets[name]
	if !ok {
		return nil, ErrTargetNotConfigured
	}
	m.logger.Debug("lazily initializing connection pool", slog.String("target", name))
	pool, err := m.openPool(ctx, target, m.logger)
	if err != nil {
		return nil, err
	}
	m.pools[name] = pool
	return pool, nil
}

// Configured reports whether a target of that name was supplied.
func (m *Manager) Configured(name string) bool {
	_, ok := m.targets[name]
	return ok
}

// Target returns the configuration of a named target.
func (m *Manager) Target(name string) (Target, bool) {
	t, ok := m.targets[name]
	return t, ok
}

// Close shuts down every pool the manager has opened.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, pool := range m.pools {
		pool.Close()
		delete(m.pools, name)
	}
}

// RequestHandle is the per-request database facade handed to route
// handlers. It owns zero or one live connector per target for the lifetime
// of one inbound request; connectors are created on first access and torn
// down unconditionally at request end via Close.
type RequestHandle interface {
	// Postgres returns the connector for the primary target.
	Postgres(ctx context.Context) (Connector, error)

	// Oracle returns the connector for the secondary target, or
	// ErrTargetNotConfigured when none is configured.
	Oracle(ctx context.Context) (Connector, error)

	// Connector returns the connector for an arbitrary named target.
	Connector(ctx context.Context, name string) (Connector, error)

	// Close releases every connector the handle created. Safe to call on
	// every exit path, including after errors.
	Close()
}

// Handle is the Manager-backed RequestHandle.
type Handle struct {
	manager *Manager
	logger  *slog.Logger

	mu    sync.Mutex
	conns map[string]Connector
}

// NewHandle creates a fresh request-scoped handle.
func (m *Manager) NewHandle() *Handle {
	return &Handle{
		manager: m,
		logger:  m.logger,
		conns:   make(map[string]Connector),
	}
}

// Connector returns the handle's connector for the named target, creating
// and caching it on first access.
func (h *Handle) Connector(ctx context.Context, name string) (Connector, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[name]; ok {
		return conn, nil
	}
	pool, err := h.manager.Pool(ctx, name)
	if err != nil {
		return nil, err
	}
	conn := Logged(name, NewConnector(pool, h.logger), h.logger)
	h.conns[name] = conn
	return conn, nil
}

// Postgres returns the connector for the primary target.
func (h *Handle) Postgres(ctx context.Context) (Connector, error) {
	return h.Connector(ctx, TargetPostgres)
}

// Oracle returns the connector for the secondary target.
func (h *Handle) Oracle(ctx context.Context) (Connector, error) {
	return h.Connector(ctx, TargetOracle)
}

// Close releases every connector created during the request.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for name, conn := range h.conns {
		conn.Close()
		delete(h.conns, name)
	}
}
