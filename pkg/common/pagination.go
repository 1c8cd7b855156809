package common

import (
	"net/http"
	"strconv"
)

const maxPageSize = 500

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: 100,
	}
}

// ExtractPaginationParams extracts pagination parameters from request
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		if ps, err := strconv.Atoi(pageSize); err == nil && ps > 0 {
			params.PageSize = min(ps, maxPageSize)
		}
	}

	return params
}

// Bounds returns the slice bounds of the page within total items
func (p PaginationParams) Bounds(total int) (start, end int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPaginationParams().PageSize
	}
	start = min((p.Page-1)*p.PageSize, total)
	end = min(start+p.PageSize, total)
	return start, end
}

// Info describes the page within total items
func (p PaginationParams) Info(total int) *PaginationInfo {
	if p.PageSize < 1 {
		p.PageSize = DefaultPaginationParams().PageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	totalPages := (total + p.PageSize - 1) / p.PageSize
	return &PaginationInfo{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
