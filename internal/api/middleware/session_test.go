package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// stubStore records which session ID Restore was asked for.
type stubStore struct {
	restoredSID string
	session     domain.Session
}

func (s *stubStore) Restore(_ context.Context, sid string) domain.Session {
	s.restoredSID = sid
	return s.session
}

func (s *stubStore) Login(context.Context, string, domain.Identity) {}
func (s *stubStore) Logout(context.Context, string)                 {}
func (s *stubStore) Current(string) domain.Session                  { return s.session }

func TestResolveSession_MintsCookieForNewVisitor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := &stubStore{}
	handler := ResolveSession(store)(func(c echo.Context) error {
		if SessionID(c) == "" {
			t.Fatalf("no session ID injected")
		}
		if SessionFrom(c).IsAuthenticated() {
			t.Fatalf("new visitor should be anonymous")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := rec.Header().Get(echo.HeaderSetCookie)
	if cookie == "" {
		t.Fatalf("no session cookie set")
	}
	if store.restoredSID == "" {
		t.Fatalf("restore not invoked before handler")
	}
}

func TestResolveSession_RestoresExistingCookie(t *testing.T) {
	identity, err := domain.NewIdentity("alice", "a@x.com", domain.RoleAdmin, "t1")
	if err != nil {
		t.Fatalf("NewIdentity: %v", err)
	}
	store := &stubStore{session: domain.Session{Identity: identity}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-42"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := ResolveSession(store)(func(c echo.Context) error {
		sess := SessionFrom(c)
		if !sess.IsAuthenticated() || sess.Identity.Username != "alice" {
			t.Fatalf("restored session not injected: %+v", sess)
		}
		if SessionID(c) != "sid-42" {
			t.Fatalf("session ID mismatch: %s", SessionID(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if store.restoredSID != "sid-42" {
		t.Fatalf("restore asked for %q", store.restoredSID)
	}
}
