package dto

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageQuery: skip/limit query parameters shared by list endpoints
type PageQuery struct {
	Skip  int `form:"skip" binding:"min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Normalize fills in the default limit.
func (q PageQuery) Normalize() PageQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

// Pagination is echoed back next to list data.
type Pagination struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}
