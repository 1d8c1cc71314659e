package entities

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps every offset within a Postgres integer
	MaxPage = math.MaxInt32 / MaxLimit
)

// Page is a 1-indexed page request
type Page struct {
	Number int
	Limit  int
}

// NewPage normalises a page request, applying defaults and the limit cap
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if number > MaxPage {
		number = MaxPage
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the number of rows to skip, never more than math.MaxInt32
func (p Page) Offset() int {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt32/p.Limit {
		return math.MaxInt32
	}
	return (p.Number - 1) * p.Limit
}

// PageInfo is the pagination block of the response envelope
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageInfo computes totalPages as ceil(total/limit)
func NewPageInfo(p Page, total int) PageInfo {
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return PageInfo{
		Page:       p.Number,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
