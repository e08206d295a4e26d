package httpapi

// Pagination is the envelope metadata on list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func paginate(total, page, limit, limitMax int) (Pagination, int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limitMax > 0 && limit > limitMax {
		limit = limitMax
	}
	if page <= 0 {
		page = 1
	}

	pages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, start, end
}
