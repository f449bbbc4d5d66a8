package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"carpenter/domain"
	"carpenter/table"
)

const cookiePrefix = "carpenter_"

// Cookie is a request-bound session driver that persists table state in
// one HttpOnly cookie per table. Construct a fresh one per request.
type Cookie struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	maxAge time.Duration

	// saved caches writes for this request: Set-Cookie only reaches the
	// client, so without it a later State call would read the stale
	// request header.
	saved map[string]domain.State
}

var _ table.Session = (*Cookie)(nil)

// CookieOption configures the cookie driver.
type CookieOption func(*Cookie)

// Secure marks the cookies Secure (HTTPS-only). Enable in production.
func Secure() CookieOption {
	return func(c *Cookie) { c.secure = true }
}

// MaxAge overrides the cookie lifetime (default 24h).
func MaxAge(d time.Duration) CookieOption {
	return func(c *Cookie) { c.maxAge = d }
}

// NewCookie creates a cookie session bound to one request/response pair.
func NewCookie(w http.ResponseWriter, r *http.Request, opts ...CookieOption) *Cookie {
	c := &Cookie{w: w, r: r, maxAge: 24 * time.Hour}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cookie) State(_ context.Context, tableName string) (domain.State, error) {
	if s, ok := c.saved[tableName]; ok {
		return s, nil
	}
	cookie, err := c.r.Cookie(cookieName(tableName))
	if err != nil {
		// No cookie yet: first visit.
		return domain.State{}, nil
	}
	raw, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		// A garbled cookie resets the state rather than failing the build.
		return domain.State{}, nil
	}
	var s domain.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.State{}, nil
	}
	return s, nil
}

func (c *Cookie) Save(_ context.Context, tableName string, s domain.State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state for table %q: %w", tableName, err)
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     cookieName(tableName),
		Value:    base64.URLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.maxAge),
	})
	if c.saved == nil {
		c.saved = make(map[string]domain.State)
	}
	c.saved[tableName] = s
	return nil
}

// cookieName derives a safe cookie name from a table name.
func cookieName(tableName string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, tableName)
	return cookiePrefix + sanitized
}
