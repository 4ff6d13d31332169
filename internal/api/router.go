package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-portal/internal/api/handler"
	"github.com/medicore/hospital-portal/internal/api/middleware"
	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// RouterConfig carries the wired dependencies the HTTP surface needs.
type RouterConfig struct {
	Store          ports.SessionStore
	Gateway        ports.AuthGateway
	Navigator      ports.Navigator
	Redis          *redis.Client // nil when persistence is degraded
	BackendBaseURL string
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Every visitor-facing route sits behind ResolveSession, so guards always
// evaluate an already-restored session.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Probes and metrics (no session handling) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Visitor-facing routes: session resolved before anything else ---
	app := e.Group("", middleware.ResolveSession(cfg.Store))

	authHandler := handler.NewAuthHandler(cfg.Gateway, cfg.Store, cfg.Logger)
	pageHandler := handler.NewPageHandler()
	navHandler := handler.NewNavigationHandler(cfg.Navigator)

	app.POST("/auth/register", authHandler.Register)
	app.POST("/auth/login", authHandler.Login)
	app.POST("/auth/logout", authHandler.Logout)
	app.POST("/auth/refresh", authHandler.Refresh)
	app.GET("/auth/verify", authHandler.Verify)

	app.GET(domain.PathHome, pageHandler.Home)
	app.GET(domain.PathLogin, pageHandler.Login)
	app.GET(domain.PathRegister, pageHandler.Register)
	app.GET(domain.PathUnauthorized, pageHandler.Unauthorized)
	app.GET("/api/navigation", navHandler.Menu)

	app.GET(domain.PathProfile, pageHandler.Profile, middleware.Authenticated())
	for _, role := range domain.Roles {
		app.GET(domain.DashboardPath(role), pageHandler.Dashboard(role), middleware.RoleRequired(role))
	}

	// --- Authenticated pass-through to the hospital backend ---
	proxyHandler, err := handler.NewBackendProxy(cfg.BackendBaseURL, cfg.Logger)
	if err != nil {
		return nil, err
	}
	app.Any("/api/v1/*", proxyHandler, middleware.Authenticated())

	return e, nil
}
