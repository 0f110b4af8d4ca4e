// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablonapp/tablon/pkg/pagination"
)

/*
TestFromRequest covers default values, explicit values, and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"no_params", "", pagination.DefaultLimit, 0},
		{"explicit_values", "limit=25&offset=100", 25, 100},
		{"limit_above_max", "limit=500", pagination.MaxLimit, 0},
		{"limit_zero", "limit=0", 1, 0},
		{"limit_negative", "limit=-5", 1, 0},
		{"offset_negative", "offset=-10", pagination.DefaultLimit, 0},
		{"non_numeric", "limit=abc&offset=xyz", pagination.DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params := pagination.FromRequest(req)

			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

/*
TestNewMeta verifies that response metadata mirrors the request parameters.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Limit: 20, Offset: 40}, 13)

	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 40, meta.Offset)
	assert.Equal(t, 13, meta.Count)
}
