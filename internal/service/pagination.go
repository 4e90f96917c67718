package service

// PageMeta describes the pagination state of a listing result.
type PageMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// newPageMeta computes pagination metadata for a total row count.
// TotalPages is zero when the collection is empty.
func newPageMeta(page, pageSize int, total int64) PageMeta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// offsetFor converts a 1-based page number into a row offset.
// Handlers clamp page/pageSize before they reach the services.
func offsetFor(page, pageSize int) int {
	return (page - 1) * pageSize
}
