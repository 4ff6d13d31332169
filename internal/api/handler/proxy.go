package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/api/middleware"
)

// NewBackendProxy forwards authenticated requests to the hospital backend
// with the session's bearer token attached. This is the surface the CRUD
// screens call through; the portal adds the credential, the backend owns
// the payloads.
func NewBackendProxy(backendBaseURL string, log zerolog.Logger) (echo.HandlerFunc, error) {
	target, err := url.Parse(backendBaseURL)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("backend proxy failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "hospital backend unavailable"})
	}

	return func(c echo.Context) error {
		req := c.Request()
		req.Header.Set("Authorization", "Bearer "+middleware.SessionFrom(c).Token())
		// The session cookie is portal-internal; it never crosses to the backend.
		req.Header.Del("Cookie")

		proxy.ServeHTTP(c.Response(), req)
		return nil
	}, nil
}
