package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatedRequestClamping(t *testing.T) {
	tests := []struct {
		name       string
		req        PaginatedRequest
		wantLimit  int
		wantOffset int
	}{
		{"defaults", PaginatedRequest{}, defaultPerPage, 0},
		{"normal", PaginatedRequest{Page: 3, PerPage: 20}, 20, 40},
		{"per_page below range", PaginatedRequest{Page: 2, PerPage: -5}, defaultPerPage, defaultPerPage},
		{"per_page above cap", PaginatedRequest{Page: 2, PerPage: 500}, maxPerPage, maxPerPage},
		{"page below range", PaginatedRequest{Page: 0, PerPage: 20}, 20, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantLimit, tc.req.Limit())
			assert.Equal(t, tc.wantOffset, tc.req.Offset())
		})
	}
}
