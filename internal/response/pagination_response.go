package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPagination clamps page and pageSize and describes the window
// [From, To) over total items. From and To are zero-based slice bounds.
func NewPagination(page, pageSize int, total int64) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	from := int64((page - 1) * pageSize)
	if from > total {
		from = total
	}
	to := from + int64(pageSize)
	if to > total {
		to = total
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       int(from),
		To:         int(to),
	}
}
