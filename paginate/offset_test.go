package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpenter/config"
	"carpenter/domain"
)

func TestOffset_Paginate(t *testing.T) {
	o := NewOffset(WithBaseURL("/tables/passengers"))

	info, err := o.Paginate(95, 10, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, info.Page)
	assert.Equal(t, 10, info.TotalPages)
	assert.Equal(t, int64(95), info.TotalRows)
	assert.True(t, info.HasPrev)
	assert.True(t, info.HasNext)

	require.Len(t, info.Links, 5) // pages 3..7
	assert.Equal(t, 3, info.Links[0].Page)
	assert.Equal(t, 7, info.Links[4].Page)
	assert.Equal(t, "/tables/passengers?page=3", info.Links[0].URL)
	assert.True(t, info.Links[2].Active)
}

func TestOffset_WindowClampsAtEdges(t *testing.T) {
	o := NewOffset()

	info, err := o.Paginate(30, 10, 1)
	require.NoError(t, err)
	require.Len(t, info.Links, 3) // pages 1..3
	assert.False(t, info.HasPrev)
	assert.True(t, info.HasNext)

	info, err = o.Paginate(30, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Links[0].Page)
	assert.Equal(t, 3, info.Links[len(info.Links)-1].Page)
	assert.False(t, info.HasNext)
}

func TestOffset_EmptyResultSet(t *testing.T) {
	info, err := NewOffset().Paginate(0, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasPrev)
	assert.False(t, info.HasNext)
	assert.Empty(t, info.Links)
}

func TestOffset_BaseURLWithExistingQuery(t *testing.T) {
	o := NewOffset(WithBaseURL("/tables/crew?sort=name"), WithPageParam("p"))
	info, err := o.Paginate(20, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "/tables/crew?sort=name&p=1", info.Links[0].URL)
}

func TestOffset_RejectsNonPositivePageSize(t *testing.T) {
	var vErr *domain.ValidationError
	_, err := NewOffset().Paginate(10, 0, 1)
	require.ErrorAs(t, err, &vErr)
}

func TestToken_Paginate(t *testing.T) {
	info, err := Token{}.Paginate(25, 10, 2)
	require.NoError(t, err)

	assert.True(t, info.HasPrev)
	assert.True(t, info.HasNext)
	require.NotEmpty(t, info.NextToken)
	assert.Equal(t, 20, domain.DecodePageToken(info.NextToken))
	assert.Empty(t, info.Links)

	// last page has no token
	info, err = Token{}.Paginate(25, 10, 3)
	require.NoError(t, err)
	assert.False(t, info.HasNext)
	assert.Empty(t, info.NextToken)
}

func TestManager_Drivers(t *testing.T) {
	m := NewManager(config.Driver{
		Driver:  "offset",
		Options: map[string]string{"base_url": "/t/x", "page_param": "pg"},
	}, nil)

	d, err := m.Driver("")
	require.NoError(t, err)
	info, err := d.Paginate(10, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "/t/x?pg=1", info.Links[0].URL)

	_, err = m.Driver("token")
	require.NoError(t, err)

	var nf *domain.NotFoundError
	_, err = m.Driver("cursor")
	require.ErrorAs(t, err, &nf)
}
