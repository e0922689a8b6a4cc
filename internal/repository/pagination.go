package repository

// Page is the paginated response shape the portal frontend expects.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// PageRequest carries paging and sorting parameters from query strings.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Normalize clamps paging values and whitelists the sort column.
func (p PageRequest) Normalize(sortable ...string) PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 || p.Size > 100 {
		p.Size = 10
	}
	if p.Direction != "asc" {
		p.Direction = "desc"
	}
	ok := false
	for _, col := range sortable {
		if p.SortBy == col {
			ok = true
			break
		}
	}
	if !ok {
		p.SortBy = "created_at"
	}
	return p
}

// Order returns the SQL order clause for the request.
func (p PageRequest) Order() string {
	return p.SortBy + " " + p.Direction
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}
