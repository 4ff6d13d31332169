package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/domain"
)

// ctxSession extracts the session and session ID injected by the
// ResolveSession middleware. A missing session ID means the route was
// mounted without the middleware — a wiring bug, not a user error.
func ctxSession(c echo.Context) (domain.Session, string, error) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return domain.Session{}, "", echo.NewHTTPError(http.StatusInternalServerError, "session not resolved")
	}
	return middleware.SessionFrom(c), sid, nil
}
