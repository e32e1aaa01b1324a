package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type Pagination struct {
	Limit  int `form:"limit"`
	Offset int `form:"skip"`
}

// Normalize clamps the page window to the allowed bounds.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
