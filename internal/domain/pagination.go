package domain

import "math"

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize, saturating at math.MaxInt.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Paginate returns the slice of items on the requested page and the total count.
// The content API returns full listings, so paging happens in the console.
func Paginate[T any](items []T, p PaginationParams) ([]T, int) {
	total := len(items)
	if p.PageSize <= 0 {
		return items, total
	}
	if p.Page < 1 {
		p.Page = 1
	}
	// Compare page numbers before multiplying so huge pages cannot overflow.
	if total == 0 || p.Page-1 > (total-1)/p.PageSize {
		return []T{}, total
	}
	start := (p.Page - 1) * p.PageSize
	end := start + p.PageSize
	if end > total {
		end = total
	}
	return items[start:end], total
}
