package pagination

// Metadata contains pagination metadata included in API responses.
type Metadata struct {
	Page         int   `json:"page"`          // Current page number (1-based)
	Size         int   `json:"size"`          // Items per page
	TotalRecords int64 `json:"total_records"` // Total number of items across all pages
	TotalPages   int   `json:"total_pages"`   // Calculated total number of pages
}

// ComputeMeta builds pagination metadata for a page of a result set,
// deriving total_pages with ceiling division.
func ComputeMeta(page, size int, totalRecords int64) Metadata {
	return Metadata{
		Page:         page,
		Size:         size,
		TotalRecords: totalRecords,
		TotalPages:   CalculateTotalPages(totalRecords, size),
	}
}
