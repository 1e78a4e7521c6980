// Package session binds issued tokens to the browser via the "jwt" cookie
// and carries one-shot flash notices between redirects.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie exposed to the client.
const CookieName = "jwt"

// CookieManager attaches and clears the session cookie. HttpOnly is always
// set; Secure is dropped only in development. MaxAge tracks the token TTL so
// browser and token expire together.
type CookieManager struct {
	secure bool
	maxAge time.Duration
}

func NewCookieManager(secure bool, maxAge time.Duration) *CookieManager {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &CookieManager{secure: secure, maxAge: maxAge}
}

// Attach sets the session cookie carrying the token.
func (m *CookieManager) Attach(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie. The token itself is not revoked; it
// remains valid until its natural expiry.
func (m *CookieManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token reads the session token from the request cookie.
func Token(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
