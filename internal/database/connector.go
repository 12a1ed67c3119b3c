// Package database implements the pooled query execution core: a bounded
// connection pool per database target, a backend-neutral connector contract
// with window-function pagination, and a per-request manager facade.
//
// Layers above this package talk only to the Connector and RequestHandle
// interfaces and never touch database/sql or a driver directly.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
)

// PagedResult is the raw outcome of a FetchAll call: the page of records,
// the ordered data columns of the caller's query (total_count already
// stripped), and the total number of matching rows across all pages.
// Page and PageSize are zero when the call did not request pagination.
type PagedResult struct {
	Columns  []string
	Data     RecordSet
	Total    int64
	Page     int
	PageSize int
}

// Paginated reports whether the originating call supplied page parameters.
func (r *PagedResult) Paginated() bool {
	return r.Page > 0 && r.PageSize > 0
}

// Connector exposes connect/close/execute/fetch operations against one
// database target. Implementations run every statement inside its own
// implicit transaction: committed on success, rolled back on any database
// error, with the error logged once (query text and parameters included)
// and re-raised unchanged to the caller.
type Connector interface {
	// Execute runs a non-result-returning statement (INSERT/UPDATE/DELETE).
	Execute(ctx context.Context, query string, args ...any) error

	// FetchOne returns the first matching row, or (nil, nil) when the query
	// matches nothing.
	FetchOne(ctx context.Context, query string, args ...any) (Record, error)

	// FetchMany returns at most size rows.
	FetchMany(ctx context.Context, query string, size int, args ...any) (RecordSet, error)

	// FetchAll returns every matching row together with the total row count.
	// When page and pageSize are both positive (page is 1-indexed) the query
	// is rewritten to return only that page while still reporting the full
	// unpaginated total.
	FetchAll(ctx context.Context, query string, args []any, page, pageSize int) (*PagedResult, error)

	// Ping verifies the held connection is alive.
	Ping(ctx context.Context) error

	// Reconnect unconditionally releases any held connection and acquires a
	// fresh one, for use after a detected fatal transport error.
	Reconnect(ctx context.Context) error

	// Close releases the held connection back to the pool. Safe to call
	// multiple times.
	Close()
}

// SQLConnector is the database/sql-backed Connector. It lazily acquires one
// pooled connection on first use and owns it exclusively until Close.
type SQLConnector struct {
	pool   *Pool
	logger *slog.Logger

	mu   sync.Mutex
	conn *sql.Conn
}

// NewConnector creates a connector over the pool. No connection is acquired
// until the first operation.
func NewConnector(pool *Pool, logger *slog.Logger) *SQLConnector {
	return &SQLConnector{pool: pool, logger: logger}
}

// acquire returns the held connection, dialing one from the pool on first use.
func (c *SQLConnector) acquire(ctx context.Context) (*sql.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn, nil
	}
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.logger.Debug("connection acquired", slog.String("target", c.pool.Target().Name))
	return conn, nil
}

// Close releases the held connection back to the pool, if any.
func (c *SQLConnector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.pool.Release(c.conn)
		c.conn = nil
		c.logger.Debug("connection released", slog.String("target", c.pool.Target().Name))
	}
}

// Reconnect releases any held connection and acquires a fresh one.
func (c *SQLConnector) Reconnect(ctx context.Context) error {
	c.Close()
	_, err := c.acquire(ctx)
	return err
}

// Ping verifies the held connection is alive.
func (c *SQLConnector) Ping(ctx context.Context) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	if err := conn.PingContext(ctx); err != nil {
		return &ConnectionError{Target: c.pool.Target().Name, Err: err}
	}
	return nil
}

// withTx runs fn inside a single-statement-scoped transaction on the held
// connection: commit on success, rollback on any error. The transaction
// never spans calls.
func (c *SQLConnector) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := c.acquire(ctx)
	if err != nil {
		return err
	}
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return &ConnectionError{Target: c.pool.Target().Name, Err: err}
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &ConnectionError{Target: c.pool.Target().Name, Err: err}
	}
	return nil
}

// queryError wraps, logs and returns a statement failure. Logged exactly
// once, at the point of detection, with enough context to reproduce.
func (c *SQLConnector) queryError(query string, args []any, err error) error {
	qErr := &QueryError{Query: query, Args: args, Err: err}
	c.logger.Error("query execution error",
		slog.String("target", c.pool.Target().Name),
		slog.String("query", query),
		slog.Any("params", args),
		slog.Any("error", err))
	return qErr
}

// Execute runs a non-result-returning statement inside an implicit
// transaction.
func (c *SQLConnector) Execute(ctx context.Context, query string, args ...any) error {
	return c.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return c.queryError(query, args, err)
		}
		return nil
	})
}

// FetchOne returns the first matching row as a Record, or (nil, nil) when
// the query matches zero rows.
func (c *SQLConnector) FetchOne(ctx context.Context, query string, args ...any) (Record, error) {
	var record Record
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return c.queryError(query, args, err)
		}
		defer func() { _ = rows.Close() }()

		records, _, err := c.scanRows(rows, 1)
		if err != nil {
			return c.queryError(query, args, err)
		}
		if len(records) > 0 {
			record = records[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FetchMany returns at most size rows.
func (c *SQLConnector) FetchMany(ctx context.Context, query string, size int, args ...any) (RecordSet, error) {
	var records RecordSet
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return c.queryError(query, args, err)
		}
		defer func() { _ = rows.Close() }()

		records, _, err = c.scanRows(rows, size)
		if err != nil {
			return c.queryError(query, args, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FetchAll rewrites the caller's query to carry a window-computed running
// total alongside the page of data, executes it, and strips the injected
// total column out of the returned records. The total always reflects the
// full unpaginated result set.
func (c *SQLConnector) FetchAll(ctx context.Context, query string, args []any, page, pageSize int) (*PagedResult, error) {
	paginate := page > 0 && pageSize > 0
	wrapped := wrapWindowCount(query, c.pool.Target().Driver, len(args), paginate)

	params := args
	if paginate {
		offset := (page - 1) * pageSize
		params = make([]any, 0, len(args)+2)
		params = append(params, args...)
		params = append(params, pageSize, offset)
	}

	result := &PagedResult{Data: RecordSet{}}
	if paginate {
		result.Page = page
		result.PageSize = pageSize
	}

	err := c.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, wrapped, params...)
		if err != nil {
			return c.queryError(wrapped, params, err)
		}
		defer func() { _ = rows.Close() }()

		columns, err := rows.Columns()
		if err != nil {
			return c.queryError(wrapped, params, err)
		}
		// The injected running total is the last column of every row; the
		// data columns exposed to the caller are exactly the original
		// query's columns.
		dataColumns := columns
		if len(columns) > 0 && columns[len(columns)-1] == totalCountColumn {
			dataColumns = columns[:len(columns)-1]
		}
		result.Columns = dataColumns

		factory := rowFactory(dataColumns)
		for rows.Next() {
			values := make([]any, len(columns))
			ptrs := make([]any, len(columns))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return c.queryError(wrapped, params, err)
			}
			if result.Total == 0 && len(columns) > len(dataColumns) {
				if total, ok := toInt64(values[len(columns)-1]); ok {
					result.Total = total
				}
			}
			result.Data = append(result.Data, factory(values))
		}
		if err := rows.Err(); err != nil {
			return c.queryError(wrapped, params, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug("query executed",
		slog.String("target", c.pool.Target().Name),
		slog.Int("rows", len(result.Data)),
		slog.Int64("total", result.Total))
	return result, nil
}

// scanRows reads up to limit rows (unbounded when limit <= 0) from the open
// result set into records keyed by the result's column names.
func (c *SQLConnector) scanRows(rows *sql.Rows, limit int) (RecordSet, []string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("read column names: %w", err)
	}
	factory := rowFactory(columns)

	records := make(RecordSet, 0)
	for rows.Next() {
		if limit > 0 && len(records) >= limit {
			break
		}
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		records = append(records, factory(values))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return records, columns, nil
}
