package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/api/metrics"
	"github.com/medicore/hospital-portal/internal/core/domain"
)

// Authenticated gates a destination on any signed-in identity, regardless of
// role. Anonymous visitors are redirected to the login destination. The
// decision is synchronous against the already-restored session; redirects
// are control flow, not errors.
func Authenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !SessionFrom(c).IsAuthenticated() {
				metrics.GuardDecisionsTotal.WithLabelValues("authenticated", "redirect_login").Inc()
				return c.Redirect(http.StatusSeeOther, domain.PathLogin)
			}
			metrics.GuardDecisionsTotal.WithLabelValues("authenticated", "render").Inc()
			return next(c)
		}
	}
}

// RoleRequired gates a destination on one specific role. Anonymous visitors
// go to login; authenticated visitors holding a different role go to the
// unauthorized destination — they are known, just not permitted.
func RoleRequired(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if !sess.IsAuthenticated() {
				metrics.GuardDecisionsTotal.WithLabelValues("role", "redirect_login").Inc()
				return c.Redirect(http.StatusSeeOther, domain.PathLogin)
			}
			if !sess.HasRole(role) {
				metrics.GuardDecisionsTotal.WithLabelValues("role", "redirect_unauthorized").Inc()
				return c.Redirect(http.StatusSeeOther, domain.PathUnauthorized)
			}
			metrics.GuardDecisionsTotal.WithLabelValues("role", "render").Inc()
			return next(c)
		}
	}
}
