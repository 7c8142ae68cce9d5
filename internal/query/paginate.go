package query

import "salesdash/internal/domain"

// Paginate slices the sorted matched set into the requested page, clamped
// to the set's bounds. A page past the end yields an empty slice, not an
// error.
func Paginate(records []domain.Transaction, req domain.PageRequest) ([]domain.Transaction, domain.Pagination) {
	total := len(records)
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}

	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	page := make([]domain.Transaction, end-start)
	copy(page, records[start:end])

	return page, domain.Pagination{
		Total:      total,
		TotalPages: totalPages,
		Page:       req.Page,
		Limit:      req.Limit,
	}
}
