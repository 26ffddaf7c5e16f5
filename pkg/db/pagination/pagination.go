package pagination

import "gorm.io/gorm"

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Pagination struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

type PageInfo struct {
	Skip    int   `json:"skip"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

// Normalize clamps skip and limit into their accepted ranges.
func (p Pagination) Normalize() Pagination {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Pagination) Apply(stmt *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return stmt.Offset(p.Skip).Limit(p.Limit)
}

func BuildPageInfo(p Pagination, returned int, total int64) PageInfo {
	p = p.Normalize()
	return PageInfo{
		Skip:    p.Skip,
		Limit:   p.Limit,
		Total:   total,
		HasMore: int64(p.Skip+returned) < total,
	}
}
