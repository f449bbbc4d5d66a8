package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpenter/domain"
)

func sliceFixture() *Slice {
	return FromMaps("id", []map[string]any{
		{"id": 1, "name": "Allen", "class": 1, "fare": 211.5},
		{"id": 2, "name": "Braund", "class": 3, "fare": 7.25},
		{"id": 3, "name": "Cumings", "class": 1, "fare": 71.28},
		{"id": 4, "name": "Heikkinen", "class": 3, "fare": 7.92},
		{"id": 5, "name": "Futrelle", "class": 1, "fare": 53.1},
	})
}

func ids(rs domain.RecordSet) []int {
	out := make([]int, 0, len(rs.Records))
	for _, r := range rs.Records {
		out = append(out, r.ID().(int))
	}
	return out
}

func TestSlice_FetchAll(t *testing.T) {
	rs, err := sliceFixture().Fetch(context.Background(), domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), rs.Total)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(rs))
}

func TestSlice_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	rs, err := sliceFixture().Fetch(context.Background(), domain.Query{
		Filters: map[string]string{"name": "EN"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, ids(rs)) // Allen, Heikkinen
	assert.Equal(t, int64(2), rs.Total)
}

func TestSlice_FilterOnNumericField(t *testing.T) {
	rs, err := sliceFixture().Fetch(context.Background(), domain.Query{
		Filters: map[string]string{"class": "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, ids(rs))
}

func TestSlice_Sort(t *testing.T) {
	tests := []struct {
		name string
		q    domain.Query
		want []int
	}{
		{
			name: "numeric ascending",
			q:    domain.Query{Sort: "fare", Dir: domain.SortAsc},
			want: []int{2, 4, 5, 3, 1},
		},
		{
			name: "numeric descending",
			q:    domain.Query{Sort: "fare", Dir: domain.SortDesc},
			want: []int{1, 3, 5, 4, 2},
		},
		{
			name: "string ascending",
			q:    domain.Query{Sort: "name"},
			want: []int{1, 2, 3, 5, 4},
		},
		{
			name: "stable on ties",
			q:    domain.Query{Sort: "class", Dir: domain.SortAsc},
			want: []int{1, 3, 5, 2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := sliceFixture().Fetch(context.Background(), tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(rs))
		})
	}
}

func TestSlice_Paging(t *testing.T) {
	s := sliceFixture()

	rs, err := s.Fetch(context.Background(), domain.Query{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, ids(rs))
	assert.Equal(t, int64(5), rs.Total)

	// offset past the end yields an empty page, total intact
	rs, err = s.Fetch(context.Background(), domain.Query{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rs.Records)
	assert.Equal(t, int64(5), rs.Total)

	// a hand-built negative offset clamps to the first page
	rs, err = s.Fetch(context.Background(), domain.Query{Limit: 2, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(rs))
}

func TestSlice_TotalCountsFilteredNotPaged(t *testing.T) {
	rs, err := sliceFixture().Fetch(context.Background(), domain.Query{
		Filters: map[string]string{"class": "1"},
		Limit:   1,
	})
	require.NoError(t, err)
	assert.Len(t, rs.Records, 1)
	assert.Equal(t, int64(3), rs.Total)
}

func TestSlice_FetchDoesNotMutateBacking(t *testing.T) {
	s := sliceFixture()
	_, err := s.Fetch(context.Background(), domain.Query{Sort: "fare", Dir: domain.SortDesc})
	require.NoError(t, err)

	rs, err := s.Fetch(context.Background(), domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(rs))
}
