package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

func newGuardContext(t *testing.T, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	WithSession(c, "sid-1", sess)
	return c, rec
}

func sessionWithRole(t *testing.T, role domain.Role) domain.Session {
	t.Helper()
	identity, err := domain.NewIdentity("u", "u@x.com", role, "t1")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	return domain.Session{Identity: identity}
}

func TestAuthenticated_RedirectsAnonymousToLogin(t *testing.T) {
	c, rec := newGuardContext(t, domain.Anonymous())

	handler := Authenticated()(func(c echo.Context) error {
		t.Fatalf("should not render")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.PathLogin {
		t.Fatalf("expected redirect to %s, got %s", domain.PathLogin, loc)
	}
}

func TestAuthenticated_RendersForAnyRole(t *testing.T) {
	for _, role := range domain.Roles {
		c, rec := newGuardContext(t, sessionWithRole(t, role))

		rendered := false
		handler := Authenticated()(func(c echo.Context) error {
			rendered = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !rendered || rec.Code != http.StatusOK {
			t.Fatalf("role %s not rendered: code=%d", role, rec.Code)
		}
	}
}

func TestRoleRequired_RedirectsAnonymousToLogin(t *testing.T) {
	c, rec := newGuardContext(t, domain.Anonymous())

	handler := RoleRequired(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not render")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.PathLogin {
		t.Fatalf("expected redirect to login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRoleRequired_RedirectsWrongRoleToUnauthorized(t *testing.T) {
	c, rec := newGuardContext(t, sessionWithRole(t, domain.RoleNurse))

	handler := RoleRequired(domain.RoleDoctor)(func(c echo.Context) error {
		t.Fatalf("should not render")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.PathUnauthorized {
		t.Fatalf("expected redirect to unauthorized, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRoleRequired_RendersMatchingRole(t *testing.T) {
	c, rec := newGuardContext(t, sessionWithRole(t, domain.RoleDoctor))

	rendered := false
	handler := RoleRequired(domain.RoleDoctor)(func(c echo.Context) error {
		rendered = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !rendered || rec.Code != http.StatusOK {
		t.Fatalf("matching role not rendered: code=%d", rec.Code)
	}
}
