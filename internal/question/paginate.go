package question

import "strconv"

// DefaultPageSize is used when no positive page size is configured.
const DefaultPageSize = 10

// Paginate returns the 1-based page of items. Pages below 1 are treated as 1
// and pages past the end are empty; the result never exceeds pageSize items.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	// Compare before multiplying so huge page numbers cannot overflow.
	if page-1 > len(items)/pageSize {
		return items[len(items):]
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[len(items):]
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// ParsePage reads a page query value; absent, non-numeric or non-positive input yields 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
