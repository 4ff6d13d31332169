package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/service"
	"github.com/medicore/hospital-portal/internal/infrastructure/session"
)

type routerStubGateway struct{}

func (routerStubGateway) Register(context.Context, string, string, string) (string, error) {
	return "user created", nil
}

func (routerStubGateway) Login(_ context.Context, email, password string) (*domain.Identity, error) {
	if email != "alice@hospital.test" || password != "secret123" {
		return nil, domain.ErrInvalidCredentials
	}
	return domain.NewIdentity("alice", email, domain.RoleAdmin, "t1")
}

func (routerStubGateway) Logout(context.Context, string) error {
	return nil
}

func (routerStubGateway) VerifyToken(context.Context, string) (bool, error) {
	return true, nil
}

func (routerStubGateway) RefreshToken(context.Context, string) (string, error) {
	return "t2", nil
}

// TestRouter drives the wired echo instance end to end. The router is built
// once: echoprometheus registers with the default registry and a second
// registration would collide.
func TestRouter(t *testing.T) {
	e, err := NewRouter(RouterConfig{
		Store:          session.NewStore(nil, zerolog.Nop()),
		Gateway:        routerStubGateway{},
		Navigator:      service.NewNavigationService(),
		BackendBaseURL: "http://localhost:1",
		Logger:         zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	do := func(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("liveness", func(t *testing.T) {
		if rec := do(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("anonymous profile redirects to login", func(t *testing.T) {
		rec := do(http.MethodGet, domain.PathProfile, "", nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.PathLogin {
			t.Fatalf("expected redirect to login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	})

	t.Run("anonymous dashboard redirects to login", func(t *testing.T) {
		rec := do(http.MethodGet, "/dashboard/doctor", "", nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.PathLogin {
			t.Fatalf("expected redirect to login, got %d", rec.Code)
		}
	})

	t.Run("anonymous navigation offers login", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/navigation", "", nil)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), domain.PathLogin) {
			t.Fatalf("unexpected menu: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("failed login keeps visitor anonymous", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/login", `{"email":"alice@hospital.test","password":"wrong-pass"}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}

		cookie := sessionCookie(t, rec)
		rec = do(http.MethodGet, domain.PathProfile, "", cookie)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("failed login unlocked profile: %d", rec.Code)
		}
	})

	t.Run("login then role gated navigation", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/login", `{"email":"alice@hospital.test","password":"secret123"}`, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
		}
		cookie := sessionCookie(t, rec)

		if rec := do(http.MethodGet, domain.PathProfile, "", cookie); rec.Code != http.StatusOK ||
			!strings.Contains(rec.Body.String(), "alice") {
			t.Fatalf("profile not rendered: %d %s", rec.Code, rec.Body.String())
		}

		if rec := do(http.MethodGet, "/dashboard/admin", "", cookie); rec.Code != http.StatusOK {
			t.Fatalf("own dashboard blocked: %d", rec.Code)
		}

		rec = do(http.MethodGet, "/dashboard/doctor", "", cookie)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != domain.PathUnauthorized {
			t.Fatalf("expected redirect to unauthorized, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
		}

		if rec := do(http.MethodGet, "/api/navigation", "", cookie); strings.Contains(rec.Body.String(), `"/register"`) {
			t.Fatalf("authenticated menu still offers register: %s", rec.Body.String())
		}

		if rec := do(http.MethodPost, "/auth/logout", "", cookie); rec.Code != http.StatusOK {
			t.Fatalf("logout failed: %d", rec.Code)
		}
		if rec := do(http.MethodGet, domain.PathProfile, "", cookie); rec.Code != http.StatusSeeOther {
			t.Fatalf("session survived logout: %d", rec.Code)
		}
	})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "portal_session" {
			return cookie
		}
	}
	t.Fatalf("no session cookie issued")
	return nil
}
