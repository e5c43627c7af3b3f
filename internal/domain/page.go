package domain

import "math"

// Page size limits for the catalog place listing.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PaginationParams selects one page of an in-memory list.
// Page is 1-indexed.
type PaginationParams struct {
	Page  int
	Limit int
}

// NewPaginationParams builds a PaginationParams from the optional page and
// limit query values. Missing or non-positive values fall back to page 1 and
// DefaultPageLimit; limits above MaxPageLimit are lowered to it.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: DefaultPageLimit}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = min(*limit, MaxPageLimit)
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
// It saturates at math.MaxInt instead of wrapping for absurd page numbers.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Bounds returns the [start, end) slice bounds of the page within a list of
// total items. 0 <= start <= end <= total always holds; pages past the end
// yield the empty range [total, total).
func (p PaginationParams) Bounds(total int) (start, end int) {
	if total <= 0 || p.Limit <= 0 {
		return 0, 0
	}
	start = min(p.Offset(), total)
	end = start + min(p.Limit, total-start)
	return start, end
}
