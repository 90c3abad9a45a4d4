// models/response.go
package models

import "math"

// ErrorResponse is the uniform failure envelope: success false plus a
// human-readable message. Internals are logged server-side, never leaked.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewError builds a failure envelope.
func NewError(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// Pagination is the list-endpoint metadata block
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination computes list metadata for the given page, limit and total.
func NewPagination(page, limit int, totalCount int64) Pagination {
	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
