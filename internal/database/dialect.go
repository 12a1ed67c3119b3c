package database

import (
	"fmt"
	"strings"
)

// Driver identifies the database engine behind a target.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMySQL    Driver = "mysql"
)

// DriverName returns the database/sql driver registration name.
func (d Driver) DriverName() string {
	switch d {
	case DriverMySQL:
		return "mysql"
	default:
		return "pgx"
	}
}

// Valid reports whether the driver is one of the supported engines.
func (d Driver) Valid() bool {
	return d == DriverPostgres || d == DriverMySQL
}

// placeholder returns the 1-based parameter placeholder for the driver's
// placeholder syntax ($n for Postgres, ? for MySQL).
func (d Driver) placeholder(n int) string {
	if d == DriverMySQL {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// totalCountColumn is the name of the window-computed running total column
// injected by the pagination rewrite. It is stripped from the records
// returned to callers.
const totalCountColumn = "total_count"

// wrapWindowCount rewrites a caller's SELECT so that every returned row also
// carries the total number of matching rows, computed server-side with
// count(*) OVER (). When withLimit is true a LIMIT/OFFSET pair is applied to
// the wrapped relation; the two extra placeholders are numbered after the
// caller's argc existing parameters.
//
// The caller's query is embedded as a subquery, so its own ORDER BY and
// parameter placeholders survive untouched.
func wrapWindowCount(query string, d Driver, argc int, withLimit bool) string {
	query = strings.TrimRight(strings.TrimSpace(query), ";")

	if withLimit {
		return fmt.Sprintf(`WITH paginated AS (
    SELECT sub.*, count(*) OVER () AS %s
    FROM (%s) AS sub
    LIMIT %s OFFSET %s
)
SELECT * FROM paginated`, totalCountColumn, query, d.placeholder(argc+1), d.placeholder(argc+2))
	}

	return fmt.Sprintf(`WITH paginated AS (
    SELECT sub.*, count(*) OVER () AS %s
    FROM (%s) AS sub
)
SELECT * FROM paginated`, totalCountColumn, query)
}
