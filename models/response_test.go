package models

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalCount int64
		want       Pagination
	}{
		{
			name: "second of two pages", page: 2, limit: 10, totalCount: 15,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 15, Limit: 10, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "first page with more to come", page: 1, limit: 10, totalCount: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 25, Limit: 10, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "empty collection", page: 1, limit: 10, totalCount: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalCount: 0, Limit: 10, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "exact multiple of limit", page: 2, limit: 5, totalCount: 10,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 10, Limit: 5, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "page past the end", page: 9, limit: 10, totalCount: 15,
			want: Pagination{CurrentPage: 9, TotalPages: 2, TotalCount: 15, Limit: 10, HasNextPage: false, HasPrevPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.limit, tt.totalCount)
			if got != tt.want {
				t.Errorf("NewPagination(%d, %d, %d) = %+v, want %+v", tt.page, tt.limit, tt.totalCount, got, tt.want)
			}
		})
	}
}

func TestNewError(t *testing.T) {
	err := NewError("Department not found")
	if err.Success {
		t.Error("error envelope must carry success=false")
	}
	if err.Message != "Department not found" {
		t.Errorf("message = %q", err.Message)
	}
}
