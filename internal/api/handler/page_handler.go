package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// PageHandler serves the portal's navigation destinations. Layout and
// styling live in the browser; these endpoints return the page's data
// payload only.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Page    string       `json:"page"`
	Message string       `json:"message,omitempty"`
	User    *sessionUser `json:"user,omitempty"`
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "home",
		Message: "Hospital Management Portal",
	})
}

func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "login",
		Message: "sign in with your hospital account",
	})
}

func (h *PageHandler) Register(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "register",
		Message: "create a hospital account",
	})
}

// Unauthorized is the role-gate failure destination. The visitor is known,
// just not permitted; this is a normal page, not an error response.
func (h *PageHandler) Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "unauthorized",
		Message: "your role does not grant access to that page",
	})
}

// Profile renders the signed-in identity. Mounted behind the Authenticated
// guard; the token itself is never echoed back.
func (h *PageHandler) Profile(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pageResponse{
		Page: "profile",
		User: &sessionUser{
			Username: sess.Identity.Username,
			Email:    sess.Identity.Email,
			Role:     sess.Identity.Role,
		},
	})
}

// Dashboard returns the destination handler for one role's dashboard.
// Each is mounted behind RoleRequired for that role.
func (h *PageHandler) Dashboard(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{
			Page:    "dashboard",
			Message: string(role) + " dashboard",
		})
	}
}
