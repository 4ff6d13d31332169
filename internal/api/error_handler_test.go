package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_ValidationErrorKeepsMessage(t *testing.T) {
	rec := handleError(t, &domain.ValidationError{Message: "email is required"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"email is required\"}\n" {
		t.Fatalf("message not surfaced inline: %s", body)
	}
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	if rec := handleError(t, domain.ErrInvalidCredentials); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestErrorHandler_NoToken(t *testing.T) {
	if rec := handleError(t, domain.ErrNoToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestErrorHandler_NetworkErrorHidesCause(t *testing.T) {
	rec := handleError(t, &domain.NetworkError{Op: "login", Err: errors.New("dial tcp: refused")})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"hospital backend unavailable\"}\n" {
		t.Fatalf("transport detail leaked: %s", body)
	}
}

func TestErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	rec := handleError(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"internal server error\"}\n" {
		t.Fatalf("internal detail leaked: %s", body)
	}
}
