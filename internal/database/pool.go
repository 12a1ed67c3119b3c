package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default pool sizing, matching the original deployment's bounds.
const (
	DefaultMinConns       = 5
	DefaultMaxConns       = 20
	DefaultAcquireTimeout = 5 * time.Second
	defaultConnLifetime   = 30 * time.Minute
)

// Target holds everything needed to connect to and pool one database.
type Target struct {
	Name     string // logical target name, e.g. "postgres" or "oracle"
	Driver   Driver
	User     string
	Password string
	Host     string
	Port     int
	Database string
	SSLMode  string // postgres only; defaults to "disable"

	MinConns       int           // connections established eagerly at pool construction
	MaxConns       int           // hard upper bound on simultaneously open connections
	AcquireTimeout time.Duration // how long Acquire blocks on an exhausted pool
}

// Validate checks that every required credential is present.
// A missing credential is a fatal startup condition.
func (t Target) Validate() error {
	required := []struct {
		field string
		ok    bool
	}{
		{"user", t.User != ""},
		{"password", t.Password != ""},
		{"host", t.Host != ""},
		{"port", t.Port > 0},
		{"database", t.Database != ""},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("target %q: required credential %q is missing", t.Name, r.field)
		}
	}
	if t.Driver != "" && !t.Driver.Valid() {
		return fmt.Errorf("target %q: unsupported driver %q", t.Name, t.Driver)
	}
	return nil
}

// withDefaults fills in zero-valued tuning knobs.
func (t Target) withDefaults() Target {
	if t.Driver == "" {
		t.Driver = DriverPostgres
	}
	if t.MinConns <= 0 {
		t.MinConns = DefaultMinConns
	}
	if t.MaxConns <= 0 {
		t.MaxConns = DefaultMaxConns
	}
	if t.MinConns > t.MaxConns {
		t.MinConns = t.MaxConns
	}
	if t.AcquireTimeout <= 0 {
		t.AcquireTimeout = DefaultAcquireTimeout
	}
	return t
}

// DSN builds the driver-specific connection string.
func (t Target) DSN() string {
	if t.Driver == DriverMySQL {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			t.User, t.Password, t.Host, t.Port, t.Database)
	}
	sslMode := t.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.User, t.Password),
		Host:     fmt.Sprintf("%s:%d", t.Host, t.Port),
		Path:     "/" + t.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

// Pool owns a bounded set of connections to one database target. It is safe
// for concurrent Acquire/Release from multiple request-handling goroutines;
// each handed-out connection is owned exclusively by its holder until
// released.
type Pool struct {
	db     *sql.DB
	target Target
	logger *slog.Logger
}

// NewPool opens a connection pool for the target, establishing MinConns
// connections eagerly and allowing lazy growth up to MaxConns. The initial
// handshake failure is reported as a *ConnectionError.
func NewPool(ctx context.Context, target Target, logger *slog.Logger) (*Pool, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	target = target.withDefaults()

	db, err := sql.Open(target.Driver.DriverName(), target.DSN())
	if err != nil {
		return nil, &ConnectionError{Target: target.Name, Err: err}
	}
	db.SetMaxOpenConns(target.MaxConns)
	db.SetMaxIdleConns(target.MaxConns)
	db.SetConnMaxLifetime(defaultConnLifetime)

	pool := &Pool{db: db, target: target, logger: logger}
	if err := pool.warmUp(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("database connection pool established",
		slog.String("target", target.Name),
		slog.String("driver", string(target.Driver)),
		slog.Int("min_conns", target.MinConns),
		slog.Int("max_conns", target.MaxConns))
	return pool, nil
}

// newPoolWithDB wraps an already opened *sql.DB. Used by tests to run the
// pool against a mock driver.
func newPoolWithDB(db *sql.DB, target Target, logger *slog.Logger) *Pool {
	target = target.withDefaults()
	db.SetMaxOpenConns(target.MaxConns)
	db.SetMaxIdleConns(target.MaxConns)
	return &Pool{db: db, target: target, logger: logger}
}

// warmUp establishes the eager minimum of connections by acquiring and
// holding MinConns connections concurrently, then returning them all to the
// idle set.
func (p *Pool) warmUp(ctx context.Context) error {
	conns := make([]*sql.Conn, p.target.MinConns)
	g, gctx := errgroup.WithContext(ctx)
	for i := range conns {
		i := i
		g.Go(func() error {
			conn, err := p.db.Conn(gctx)
			if err != nil {
				return err
			}
			if err := conn.PingContext(gctx); err != nil {
				_ = conn.Close()
				return err
			}
			conns[i] = conn
			return nil
		})
	}
	err := g.Wait()
	for _, conn := range conns {
		if conn != nil {
			_ = conn.Close()
		}
	}
	if err != nil {
		return &ConnectionError{Target: p.target.Name, Err: err}
	}
	return nil
}

// Acquire hands out a connection owned exclusively by the caller for one
// logical unit of work. When the pool is exhausted the call blocks until a
// release or until the configured acquire timeout elapses, whichever comes
// first; timeout and handshake failures surface as *ConnectionError.
func (p *Pool) Acquire(ctx context.Context) (*sql.Conn, error) {
	acquireCtx := ctx
	if p.target.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.target.AcquireTimeout)
		defer cancel()
	}
	conn, err := p.db.Conn(acquireCtx)
	if err != nil {
		return nil, &ConnectionError{Target: p.target.Name, Err: err}
	}
	return conn, nil
}

// Release returns a connection to the free set. Release never fails:
// integrity errors are logged and the connection is discarded by the
// underlying pool rather than reused. Releasing the same connection twice
// is tolerated.
func (p *Pool) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		p.logger.Error("discarding connection on release failure",
			slog.String("target", p.target.Name),
			slog.Any("error", err))
	}
}

// Ping verifies the target is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return &ConnectionError{Target: p.target.Name, Err: err}
	}
	return nil
}

// Stats exposes the underlying pool statistics for health reporting.
func (p *Pool) Stats() sql.DBStats {
	return p.db.Stats()
}

// Target returns the pool's target configuration.
func (p *Pool) Target() Target {
	return p.target
}

// Close shuts the pool down, closing every idle connection.
func (p *Pool) Close() {
	if err := p.db.Close(); err != nil {
		p.logger.Error("failed to close connection pool",
			slog.String("target", p.target.Name),
			slog.Any("error", err))
	}
}
