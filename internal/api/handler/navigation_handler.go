package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// NavigationHandler serves the navigation shell's menu. Entries are computed
// from the session restored for this request, so they can never go stale
// relative to it.
type NavigationHandler struct {
	navigator ports.Navigator
}

func NewNavigationHandler(navigator ports.Navigator) *NavigationHandler {
	return &NavigationHandler{navigator: navigator}
}

type navigationResponse struct {
	Authenticated bool               `json:"authenticated"`
	Entries       []domain.MenuEntry `json:"entries"`
}

func (h *NavigationHandler) Menu(c echo.Context) error {
	sess, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, navigationResponse{
		Authenticated: sess.IsAuthenticated(),
		Entries:       h.navigator.MenuFor(sess),
	})
}
