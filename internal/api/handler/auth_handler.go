package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/api/metrics"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// AuthHandler owns the credential flows: it binds the forms, drives the
// gateway exchange, and decides when the session store is touched. The
// gateway itself never mutates the store.
type AuthHandler struct {
	gateway ports.AuthGateway
	store   ports.SessionStore
	log     zerolog.Logger
}

func NewAuthHandler(gateway ports.AuthGateway, store ports.SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{gateway: gateway, store: store, log: log}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionUser struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// authResponse carries the confirmation message and, where a navigation
// should follow it, the destination the client navigates to after showing
// the message.
type authResponse struct {
	Message  string       `json:"message"`
	Redirect string       `json:"redirect,omitempty"`
	User     *sessionUser `json:"user,omitempty"`
}

type verifyResponse struct {
	IsValid bool `json:"isValid"`
}

// Register creates a backend account. Registration never signs the user in;
// the redirect sends them to the login destination.
//
// @Summary      Register a new hospital account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	message, err := h.gateway.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	if message == "" {
		message = "registration successful, please sign in"
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message:  message,
		Redirect: domain.PathLogin,
	})
}

// Login exchanges credentials for an identity and binds it to the visitor's
// session. On failure the session is left untouched and the form stays
// editable.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	_, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	identity, err := h.gateway.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	h.store.Login(c.Request().Context(), sid, *identity)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Str("username", identity.Username).Str("role", string(identity.Role)).Msg("signed in")

	return c.JSON(http.StatusOK, authResponse{
		Message:  "login successful, redirecting",
		Redirect: domain.PathHome,
		User: &sessionUser{
			Username: identity.Username,
			Email:    identity.Email,
			Role:     identity.Role,
		},
	})
}

// Logout notifies the backend, then clears the local session, then sends
// the client to the login destination, so the shell never shows a signed-in
// state for a session already gone. The backend notification is best-effort
// and never blocks the local logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, sid, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.gateway.Logout(c.Request().Context(), sess.Token()); err != nil {
		h.log.Warn().Err(err).Msg("backend logout notification failed")
	}
	h.store.Logout(c.Request().Context(), sid)

	return c.JSON(http.StatusOK, authResponse{
		Message:  "logged out",
		Redirect: domain.PathLogin,
	})
}

// Refresh exchanges the session's token for a fresh one and re-binds the
// identity under the new token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	sess, sid, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !sess.IsAuthenticated() {
		return domain.ErrNoToken
	}

	token, err := h.gateway.RefreshToken(c.Request().Context(), sess.Token())
	if err != nil {
		return err
	}

	identity := *sess.Identity
	identity.Token = token
	h.store.Login(c.Request().Context(), sid, identity)

	return c.JSON(http.StatusOK, authResponse{Message: "token refreshed"})
}

// Verify reports whether the backend still accepts the session's token.
// Purely opportunistic: errors count as "not valid" rather than failing
// the request.
func (h *AuthHandler) Verify(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	valid, err := h.gateway.VerifyToken(c.Request().Context(), sess.Token())
	if err != nil {
		h.log.Debug().Err(err).Msg("token verification errored")
		valid = false
	}
	return c.JSON(http.StatusOK, verifyResponse{IsValid: valid})
}

func loginOutcome(err error) string {
	if err == domain.ErrInvalidCredentials {
		return "invalid_credentials"
	}
	return "error"
}
