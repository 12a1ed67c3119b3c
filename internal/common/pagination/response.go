package pagination

// Meta bundles the pagination and link metadata of a paginated response.
// Pagination is present iff the originating call supplied page parameters.
type Meta struct {
	Pagination *Metadata `json:"pagination,omitempty"`
	Links      *Links    `json:"links,omitempty"`
}

// Response is a generic paginated response wrapper.
// T is the type of data items (e.g., user.DTO).
//
// Data is always present (an empty array for zero rows); Metadata is
// omitted entirely when the underlying query returned zero rows.
type Response[T any] struct {
	Data     []T   `json:"data"`
	Metadata *Meta `json:"_metadata,omitempty"`
}

// NewResponse creates a paginated response with data and metadata.
func NewResponse[T any](data []T, meta *Meta) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Data:     data,
		Metadata: meta,
	}
}
