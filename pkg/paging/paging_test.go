package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		totalCount int64
		wantPage   int
		wantPages  int
	}{
		{name: "first page", page: 1, perPage: 5, totalCount: 12, wantPage: 1, wantPages: 3},
		{name: "page below range", page: 0, perPage: 5, totalCount: 12, wantPage: 1, wantPages: 3},
		{name: "negative page", page: -3, perPage: 5, totalCount: 12, wantPage: 1, wantPages: 3},
		{name: "page above range clamps to last", page: 99, perPage: 5, totalCount: 12, wantPage: 3, wantPages: 3},
		{name: "empty dataset keeps one page", page: 4, perPage: 5, totalCount: 0, wantPage: 1, wantPages: 1},
		{name: "per page defaults", page: 1, perPage: 0, totalCount: 12, wantPage: 1, wantPages: 3},
		{name: "exact multiple", page: 2, perPage: 5, totalCount: 10, wantPage: 2, wantPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, totalPages := Normalize(tt.page, tt.perPage, tt.totalCount)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPages, totalPages)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, PerPage: 5}.Offset())
	assert.Equal(t, 5, Params{Page: 2, PerPage: 5}.Offset())
	assert.Equal(t, 20, Params{Page: 3, PerPage: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(11, DefaultPerPage))
}
