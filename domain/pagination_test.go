package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPageToken(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		limit   int
		total   int64
		hasNext bool
	}{
		{name: "middle of result set", offset: 0, limit: 10, total: 25, hasNext: true},
		{name: "exact boundary", offset: 10, limit: 10, total: 20, hasNext: false},
		{name: "last partial page", offset: 20, limit: 10, total: 25, hasNext: false},
		{name: "empty result set", offset: 0, limit: 10, total: 0, hasNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := NextPageToken(tt.offset, tt.limit, tt.total)
			if !tt.hasNext {
				assert.Empty(t, token)
				return
			}
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.offset+tt.limit, DecodePageToken(token))
		})
	}
}

func TestDecodePageToken_Malformed(t *testing.T) {
	assert.Equal(t, 0, DecodePageToken(""))
	assert.Equal(t, 0, DecodePageToken("not-base64!"))
	assert.Equal(t, 0, DecodePageToken("aGVsbG8=")) // "hello", not a number
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 3, TotalPages(21, 10))
	assert.Equal(t, 0, TotalPages(21, 0))
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-5))
	assert.Equal(t, 50, ClampPageSize(50))
	assert.Equal(t, MaxPageSize, ClampPageSize(MaxPageSize+1))
}

func TestStateSetFilter(t *testing.T) {
	var s State
	s.SetFilter("name", "smith")
	assert.Equal(t, map[string]string{"name": "smith"}, s.Filters)

	s.SetFilter("name", "")
	assert.Empty(t, s.Filters)

	// clearing a filter on a nil map must not panic
	var empty State
	empty.SetFilter("name", "")
	assert.Nil(t, empty.Filters)
}
