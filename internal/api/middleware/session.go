package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

const (
	// CookieName is the session-ID cookie the portal issues to each visitor.
	CookieName = "portal_session"

	sessionKey   = "session"
	sessionIDKey = "session_id"
)

// ResolveSession reads the visitor's session cookie (minting one when
// absent), restores the matching session from the store, and injects both
// into the request context. It must be mounted before any guard: guards
// evaluate synchronously against the session restored here.
func ResolveSession(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				sid = cookie.Value
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			WithSession(c, sid, store.Restore(c.Request().Context(), sid))

			return next(c)
		}
	}
}

// WithSession injects a resolved session into the request context. Used by
// ResolveSession and by tests that exercise guarded handlers directly.
func WithSession(c echo.Context, sid string, sess domain.Session) {
	c.Set(sessionIDKey, sid)
	c.Set(sessionKey, sess)
}

// SessionFrom returns the session injected by ResolveSession, or the
// anonymous session when the middleware did not run.
func SessionFrom(c echo.Context) domain.Session {
	sess, _ := c.Get(sessionKey).(domain.Session)
	return sess
}

// SessionID returns the session ID injected by ResolveSession, or "".
func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionIDKey).(string)
	return sid
}
