// Package router maps the API surface onto handlers and guards.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// Guards are the per-route middlewares, built once and shared by every
// Register function.
type Guards struct {
	Auth      echo.MiddlewareFunc // valid session required
	Optional  echo.MiddlewareFunc // session attached when present
	Admin     echo.MiddlewareFunc // admin role required, after Auth
	JSON      echo.MiddlewareFunc // application/json body required
	RateLimit echo.MiddlewareFunc // credential endpoints
	AdminGate echo.MiddlewareFunc // admin registration bootstrap rule
}

// NewGuards wires the guards.  limiter may be nil to disable rate limiting.
func NewGuards(tokens middleware.TokenVerifier, admins middleware.AdminChecker, limiter echo.MiddlewareFunc, log *zap.Logger) Guards {
	if limiter == nil {
		limiter = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return Guards{
		Auth:      middleware.Authenticate(tokens),
		Optional:  middleware.OptionalAuthenticate(tokens),
		Admin:     middleware.RequireAdmin(),
		JSON:      middleware.RequireJSON(),
		RateLimit: limiter,
		AdminGate: middleware.AdminRegisterGate(admins, tokens, log),
	}
}

// RegisterRoutes registers the unauthenticated health probe.
func RegisterRoutes(e *echo.Echo, env string) {
	e.GET("/health", handler.Health(env))
}

// RegisterAuth registers /api/auth.  Logout requires a session only so that
// anonymous calls are rejected; the handler itself just clears the cookie.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guards) {
	r := e.Group("/api/auth")
	r.POST("/register", a.Register, g.JSON, g.RateLimit, g.Optional)
	r.POST("/admin/register", a.Register, g.JSON, g.RateLimit, g.AdminGate)
	r.POST("/login", a.Login, g.JSON, g.RateLimit)
	r.POST("/logout", a.Logout, g.Auth)
}

// RegisterUsers registers the signed-in user's own account routes.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, g Guards) {
	r := e.Group("/api/users")
	r.GET("/me", u.Me, g.Auth)
	r.PUT("/me", u.UpdateMe, g.Auth, g.JSON)
	r.PUT("/me/change-password", u.ChangePassword, g.Auth, g.JSON, g.RateLimit)
}

// RegisterMovies registers the catalog.  Reads need any session; writes and
// stats need an admin.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, g Guards) {
	r := e.Group("/api/movies")
	r.GET("", m.List, g.Auth)
	r.GET("/admin/stats", m.Stats, g.Auth, g.Admin)
	r.GET("/:movieId", m.Get, g.Auth)
	r.POST("", m.Create, g.Auth, g.Admin, g.JSON)
	r.PUT("/:movieId", m.Update, g.Auth, g.Admin, g.JSON)
	r.DELETE("/:movieId", m.Delete, g.Auth, g.Admin)
}

// RegisterActivityLogs registers the admin audit listing.
func RegisterActivityLogs(e *echo.Echo, l *handler.ActivityLogHandler, g Guards) {
	e.GET("/api/activity-logs", l.List, g.Auth, g.Admin)
}
