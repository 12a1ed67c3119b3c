package pagination_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"playground-api/internal/common/pagination"
)

func TestNewLinkBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		wantErr bool
	}{
		{name: "absolute http", base: "http://localhost:8080"},
		{name: "absolute https with path", base: "https://api.example.com/v1"},
		{name: "missing scheme", base: "localhost:8080", wantErr: true},
		{name: "relative path", base: "/user", wantErr: true},
		{name: "empty", base: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.NewLinkBuilder(tt.base)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLinkBuilder(%q) err=%v, wantErr=%v", tt.base, err, tt.wantErr)
			}
		})
	}
}

func TestLinkBuilderBuild(t *testing.T) {
	t.Parallel()

	b, err := pagination.NewLinkBuilder("http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLinkBuilder err=%v", err)
	}

	tests := []struct {
		name       string
		page       int
		totalPages int
		want       pagination.Links
	}{
		{
			name:       "middle page has next and prev",
			page:       2,
			totalPages: 3,
			want: pagination.Links{
				Self: "http://localhost:8080/user?page=2&size=5",
				Next: "http://localhost:8080/user?page=3&size=5",
				Prev: "http://localhost:8080/user?page=1&size=5",
			},
		},
		{
			name:       "first page omits prev",
			page:       1,
			totalPages: 3,
			want: pagination.Links{
				Self: "http://localhost:8080/user?page=1&size=5",
				Next: "http://localhost:8080/user?page=2&size=5",
			},
		},
		{
			name:       "last page omits next",
			page:       3,
			totalPages: 3,
			want: pagination.Links{
				Self: "http://localhost:8080/user?page=3&size=5",
				Prev: "http://localhost:8080/user?page=2&size=5",
			},
		},
		{
			name:       "single page omits both",
			page:       1,
			totalPages: 1,
			want: pagination.Links{
				Self: "http://localhost:8080/user?page=1&size=5",
			},
		},
		{
			name:       "page beyond total omits next",
			page:       5,
			totalPages: 3,
			want: pagination.Links{
				Self: "http://localhost:8080/user?page=5&size=5",
				Prev: "http://localhost:8080/user?page=4&size=5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Build("/user", tt.page, 5, tt.totalPages)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
