package pagination

// CalculateOffset calculates the database OFFSET value based on page number
// and page size. Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * size
func CalculateOffset(page, size int) int {
	return (page - 1) * size
}

// CalculateTotalPages calculates the total number of pages for a result set.
// Uses ceiling division so a partial final page still counts.
//
// Special cases:
//   - If total is 0, returns 0 (an empty result set has no pages)
//   - If size <= 0, returns 1 when total > 0, else 0
//
// Examples:
//   - Total 0, Size 5  -> 0 pages
//   - Total 12, Size 5 -> 3 pages
//   - Total 10, Size 5 -> 2 pages
//   - Total 3, Size 5  -> 1 page
func CalculateTotalPages(total int64, size int) int {
	if total == 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
