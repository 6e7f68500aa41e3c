package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminChecker reports whether any active admin account exists.
type AdminChecker interface {
	AdminExists(ctx context.Context) (bool, error)
}

// AdminRegisterGate guards admin registration.  While no admin exists the
// endpoint is open so the first account can bootstrap the system.  Once
// one does, the caller must hold an admin session.  If the lookup fails the
// gate behaves as if an admin exists.
func AdminRegisterGate(admins AdminChecker, tokens TokenVerifier, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	guarded := func(next echo.HandlerFunc) echo.HandlerFunc {
		return Authenticate(tokens)(RequireAdmin()(next))
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		locked := guarded(next)
		open := OptionalAuthenticate(tokens)(next)
		return func(c echo.Context) error {
			exists, err := admins.AdminExists(c.Request().Context())
			if err != nil {
				log.Warn("admin lookup failed, requiring admin session", zap.Error(err))
				return locked(c)
			}
			if exists {
				return locked(c)
			}
			return open(c)
		}
	}
}
