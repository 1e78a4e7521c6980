package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/session"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const accountContextKey = "account"

// CurrentAccount returns the profile injected by Identify or RequireAuth.
func CurrentAccount(c echo.Context) (*domain.Profile, bool) {
	profile, ok := c.Get(accountContextKey).(*domain.Profile)
	return profile, ok
}

// ClearAccount drops the identity injected for the current request, so
// anything rendered after logout sees an anonymous visitor.
func ClearAccount(c echo.Context) {
	c.Set(accountContextKey, nil)
}

// Identify decodes the session cookie when present and injects the profile
// into context. It never blocks a request: pages that work for anonymous
// visitors use it to show login state in the header.
func Identify(issuer ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := session.Token(c)
			if !ok {
				return next(c)
			}

			profile, err := issuer.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(accountContextKey, profile)
			return next(c)
		}
	}
}

// RequireAuth guards account pages. A missing or expired session redirects to
// the login page with a notice; an invalid token additionally drops the
// cookie.
func RequireAuth(issuer ports.TokenIssuer, cookies *session.CookieManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := session.Token(c)
			if !ok {
				session.SetFlash(c, "Please log in.")
				return c.Redirect(http.StatusFound, "/account/login")
			}

			profile, err := issuer.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				cookies.Clear(c)
				if errors.Is(err, domain.ErrTokenExpired) {
					session.SetFlash(c, "Your session has expired. Please log in again.")
				} else {
					session.SetFlash(c, "Please log in.")
				}
				return c.Redirect(http.StatusFound, "/account/login")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(accountContextKey, profile)
			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
