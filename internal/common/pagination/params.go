package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page int // 1-based page number
	Size int // Items per page
}

// ParseQueryParams parses pagination parameters from the HTTP request query
// string. Returns Params with defaults if parameters are missing.
//
// Query parameters:
//   - page: Page number (must be a positive integer)
//   - size: Items per page (must be between 1 and config.MaxSize)
//
// Returns an error if parameters are present but invalid.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page: config.DefaultPage,
		Size: config.DefaultSize,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > config.MaxSize {
			return params, fmt.Errorf("invalid query parameter: size must be between 1 and %d", config.MaxSize)
		}
		params.Size = size
	}

	return params, nil
}
