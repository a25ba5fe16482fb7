package dto

// PaginatedResponse 分页结果
type PaginatedResponse struct {
	Items   interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// PageQuery 分页参数
type PageQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Normalize 修正分页参数
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
}

// Offset 计算偏移量
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
