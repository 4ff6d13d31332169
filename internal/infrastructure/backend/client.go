// Package backend implements the auth gateway: the HTTP client for the
// external hospital API's credential endpoints. It produces and invalidates
// identities but never owns session state; callers decide when to touch the
// session store.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/api/metrics"
	"github.com/medicore/hospital-portal/internal/core/domain"
)

// Client talks to the hospital backend under /api/v1/auth.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the backend's auth response shape. Every auth endpoint answers
// with a subset of these fields.
type envelope struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	IsValid bool   `json:"isValid"`
	User    *struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"user"`
}

// Register creates an account. The backend requires a separate login
// afterwards; no identity is produced here.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	env, status, err := c.post(ctx, "register", "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	switch {
	case status >= 200 && status < 300:
		return env.Message, nil
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return "", &domain.ValidationError{Message: errorMessage(env, status)}
	default:
		return "", &domain.NetworkError{Op: "register", Err: fmt.Errorf("unexpected status %d", status)}
	}
}

// Login exchanges credentials for an Identity. When the backend omits the
// user's role from the response, the token's role claim is used instead.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	env, status, err := c.post(ctx, "login", "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case status >= 200 && status < 300:
		// continue below
	case status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusNotFound:
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, &domain.NetworkError{Op: "login", Err: fmt.Errorf("unexpected status %d", status)}
	}

	if env.Token == "" {
		return nil, &domain.NetworkError{Op: "login", Err: fmt.Errorf("no token in response")}
	}

	claims := tokenClaims(env.Token)

	username, mail := claimString(claims, "username"), email
	roleRaw := claimString(claims, "role")
	if env.User != nil {
		if env.User.Username != "" {
			username = env.User.Username
		}
		if env.User.Email != "" {
			mail = env.User.Email
		}
		if env.User.Role != "" {
			roleRaw = env.User.Role
		}
	}

	role, err := domain.ParseRole(roleRaw)
	if err != nil {
		return nil, &domain.NetworkError{Op: "login", Err: fmt.Errorf("response missing role for %q", username)}
	}

	return domain.NewIdentity(username, mail, role, env.Token)
}

// Logout notifies the backend so it can drop any server-side token state.
// Best-effort: callers must clear the local session regardless of the result.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, status, err := c.post(ctx, "logout", "/api/v1/auth/logout", token, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return &domain.NetworkError{Op: "logout", Err: fmt.Errorf("unexpected status %d", status)}
	}
	return nil
}

// VerifyToken reports whether the backend still accepts the token. A token
// whose exp claim has already passed is reported invalid without a network
// round-trip.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	if tokenExpired(token) {
		return false, nil
	}

	env, status, err := c.post(ctx, "verify_token", "/api/v1/auth/verify-token", token, nil)
	if err != nil {
		return false, err
	}
	switch {
	case status >= 200 && status < 300:
		return env.IsValid, nil
	case status == http.StatusUnauthorized:
		return false, nil
	default:
		return false, &domain.NetworkError{Op: "verify_token", Err: fmt.Errorf("unexpected status %d", status)}
	}
}

// RefreshToken exchanges the current token for a new one.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrNoToken
	}

	env, status, err := c.post(ctx, "refresh_token", "/api/v1/auth/refresh-token", token, nil)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &domain.NetworkError{Op: "refresh_token", Err: fmt.Errorf("unexpected status %d", status)}
	}
	if env.Token == "" {
		return "", &domain.NetworkError{Op: "refresh_token", Err: fmt.Errorf("no token in response")}
	}
	return env.Token, nil
}

// post performs one JSON exchange. Transport failures surface as
// NetworkError; any HTTP response, success or not, is decoded into the
// envelope and returned with its status for the caller to interpret.
func (c *Client) post(ctx context.Context, op, path, token string, payload any) (*envelope, int, error) {
	start := time.Now()
	env, status, err := c.doPost(ctx, path, token, payload)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.BackendExchangeDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("backend exchange failed")
		return nil, 0, &domain.NetworkError{Op: op, Err: err}
	}
	return env, status, nil
}

func (c *Client) doPost(ctx context.Context, path, token string, payload any) (*envelope, int, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var env envelope
	// Non-JSON bodies (proxies, load balancers) are tolerated; the status
	// code alone is enough to classify the outcome.
	_ = json.NewDecoder(resp.Body).Decode(&env)

	return &env, resp.StatusCode, nil
}

func errorMessage(env *envelope, status int) string {
	if env.Message != "" {
		return env.Message
	}
	return http.StatusText(status)
}

// tokenClaims parses the token without verifying its signature. The token is
// an opaque credential owned by the backend; its claims are advisory only.
func tokenClaims(token string) jwt.MapClaims {
	claims := jwt.MapClaims{}
	_, _, _ = jwt.NewParser().ParseUnverified(token, claims)
	return claims
}

func claimString(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func tokenExpired(token string) bool {
	exp, err := tokenClaims(token).GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
