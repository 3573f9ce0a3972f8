package dto

import "github.com/auctionhub/currency-service/internal/domain/port/usecase"

// PageResponse is one page of a listing
type PageResponse[T any] struct {
	Count      int64 `json:"count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
	Results    []T   `json:"results"`
}

// NewPageResponse wraps results with the paging metadata
func NewPageResponse[T any](results []T, count int64, page, pageSize int) PageResponse[T] {
	if results == nil {
		results = []T{}
	}
	return PageResponse[T]{
		Count:      count,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: usecase.TotalPages(count, pageSize),
		Results:    results,
	}
}

// PageQuery is the common page/page_size query string
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1"`
}
