package requests

type Pagination struct {
	Page     int `json:"page" validate:"gte=1"`
	PageSize int `json:"page_size" validate:"gte=1,lte=100"`
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
