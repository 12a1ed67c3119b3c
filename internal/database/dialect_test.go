package database

import (
	"strings"
	"testing"
)

func TestWrapWindowCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		driver    Driver
		argc      int
		withLimit bool
		contains  []string
		excludes  []string
	}{
		{
			name:      "postgres paginated",
			query:     "SELECT id, username FROM users ORDER BY id",
			driver:    DriverPostgres,
			argc:      0,
			withLimit: true,
			contains: []string{
				"WITH paginated AS (",
				"count(*) OVER () AS total_count",
				"FROM (SELECT id, username FROM users ORDER BY id) AS sub",
				"LIMIT $1 OFFSET $2",
				"SELECT * FROM paginated",
			},
		},
		{
			name:      "postgres pagination placeholders follow caller args",
			query:     "SELECT id FROM users WHERE id > $1",
			driver:    DriverPostgres,
			argc:      1,
			withLimit: true,
			contains:  []string{"LIMIT $2 OFFSET $3"},
		},
		{
			name:      "mysql uses positional placeholders",
			query:     "SELECT id FROM users WHERE id > ?",
			driver:    DriverMySQL,
			argc:      1,
			withLimit: true,
			contains:  []string{"LIMIT ? OFFSET ?"},
		},
		{
			name:      "unpaginated omits limit clause",
			query:     "SELECT id FROM users",
			driver:    DriverPostgres,
			argc:      0,
			withLimit: false,
			contains:  []string{"count(*) OVER () AS total_count"},
			excludes:  []string{"LIMIT", "OFFSET"},
		},
		{
			name:      "trailing semicolon stripped before embedding",
			query:     "SELECT id FROM users;",
			driver:    DriverPostgres,
			argc:      0,
			withLimit: true,
			contains:  []string{"FROM (SELECT id FROM users) AS sub"},
			excludes:  []string{";"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapWindowCount(tt.query, tt.driver, tt.argc, tt.withLimit)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("rewritten query missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("rewritten query should not contain %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	t.Parallel()

	if got := DriverPostgres.DriverName(); got != "pgx" {
		t.Errorf("postgres driver name = %q, want pgx", got)
	}
	if got := DriverMySQL.DriverName(); got != "mysql" {
		t.Errorf("mysql driver name = %q, want mysql", got)
	}
}
