package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Links holds the HATEOAS-style navigation links attached to a paginated
// response. Next is absent when the current page is the last one; Prev is
// absent on the first page.
type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// LinkBuilder generates absolute navigation URLs for a named endpoint.
// The base URL is the externally visible server address; the builder only
// supplies the semantic page/size parameters.
type LinkBuilder struct {
	base *url.URL
}

// NewLinkBuilder creates a link builder rooted at the given absolute base
// URL (e.g. "http://localhost:8080").
func NewLinkBuilder(rawBase string) (*LinkBuilder, error) {
	base, err := url.Parse(rawBase)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute: %q", rawBase)
	}
	return &LinkBuilder{base: base}, nil
}

// Build generates the self/next/prev links for one page of the endpoint.
// Next is present only if page < totalPages; Prev only if page > 1.
func (b *LinkBuilder) Build(endpoint string, page, size, totalPages int) Links {
	links := Links{
		Self: b.pageURL(endpoint, page, size),
	}
	if page < totalPages {
		links.Next = b.pageURL(endpoint, page+1, size)
	}
	if page > 1 {
		links.Prev = b.pageURL(endpoint, page-1, size)
	}
	return links
}

// pageURL renders the absolute URL of one page.
func (b *LinkBuilder) pageURL(endpoint string, page, size int) string {
	u := b.base.JoinPath(endpoint)
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return u.String()
}
