package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpenter/config"
	"carpenter/domain"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// unknown table reads as empty state
	s, err := m.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, s)

	want := domain.State{
		Sort:    "name",
		Dir:     domain.SortDesc,
		Filters: map[string]string{"name": "al"},
		Page:    2,
	}
	require.NoError(t, m.Save(ctx, "passengers", want))

	got, err := m.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// states are isolated per table
	other, err := m.State(ctx, "crew")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, other)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	saved := domain.State{Filters: map[string]string{"name": "al"}}
	require.NoError(t, m.Save(ctx, "passengers", saved))
	saved.Filters["name"] = "mutated-after-save"

	got, err := m.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, "al", got.Filters["name"])

	got.Filters["name"] = "mutated-after-read"
	again, err := m.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, "al", again.Filters["name"])
}

func TestNull_HoldsNothing(t *testing.T) {
	ctx := context.Background()
	var n Null
	require.NoError(t, n.Save(ctx, "passengers", domain.State{Sort: "name"}))
	s, err := n.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, s)
}

func TestCookie_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// First request: save state, capture the Set-Cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tables/passengers", nil)
	c := NewCookie(rec, req)

	want := domain.State{Sort: "fare", Dir: domain.SortDesc, Page: 3,
		Filters: map[string]string{"class": "1"}}
	require.NoError(t, c.Save(ctx, "passengers", want))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "carpenter_passengers", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.False(t, cookies[0].Secure)

	// Second request carries the cookie back.
	req2 := httptest.NewRequest(http.MethodGet, "/tables/passengers", nil)
	req2.AddCookie(cookies[0])
	c2 := NewCookie(httptest.NewRecorder(), req2)

	got, err := c2.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCookie_SaveVisibleWithinRequest(t *testing.T) {
	ctx := context.Background()
	req := httptest.NewRequest(http.MethodGet, "/tables/passengers", nil)
	c := NewCookie(httptest.NewRecorder(), req)

	// Set-Cookie only reaches the client, so a same-request read must be
	// served from the driver itself.
	want := domain.State{Sort: "name", Dir: domain.SortDesc}
	require.NoError(t, c.Save(ctx, "passengers", want))

	got, err := c.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// other tables still read from the request
	other, err := c.State(ctx, "crew")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, other)
}

func TestCookie_MissingOrGarbledCookieReadsEmpty(t *testing.T) {
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := NewCookie(httptest.NewRecorder(), req)
	s, err := c.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, s)

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&http.Cookie{Name: "carpenter_passengers", Value: "%%%not-base64"})
	c2 := NewCookie(httptest.NewRecorder(), req2)
	s, err = c2.State(ctx, "passengers")
	require.NoError(t, err)
	assert.Equal(t, domain.State{}, s)
}

func TestCookie_SecureOption(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := NewCookie(rec, req, Secure())

	require.NoError(t, c.Save(context.Background(), "passengers", domain.State{Page: 1}))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

func TestCookie_NameSanitization(t *testing.T) {
	assert.Equal(t, "carpenter_crew_manifest_2026", cookieName("crew manifest/2026"))
}

func TestManager_Drivers(t *testing.T) {
	m := NewManager(config.Driver{Driver: "memory"}, nil)
	d, err := m.Driver("")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, d)

	d, err = m.Driver("none")
	require.NoError(t, err)
	assert.IsType(t, Null{}, d)

	// cookie cannot be resolved from config alone
	_, err = m.Driver("cookie")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = m.Driver("redis")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}
