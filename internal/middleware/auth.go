package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// MsgUnauthorized is returned for a missing, invalid or expired session.
const MsgUnauthorized = "Unauthorized"

// TokenVerifier checks a session token.  *utils.TokenSigner implements it.
type TokenVerifier interface {
	Verify(raw string) (*utils.Claims, bool)
}

// Authenticate reads the session token from the cookie and rejects the
// request with 401 unless it verifies.  On success the caller's id, email
// and role are stored in the context; see IdentityFrom.
func Authenticate(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !attachIdentity(c, tokens) {
				return apperror.New(apperror.CodeUnauthorized, MsgUnauthorized)
			}
			return next(c)
		}
	}
}

// OptionalAuthenticate attaches the identity when a valid cookie is
// present and lets every request through.
func OptionalAuthenticate(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			attachIdentity(c, tokens)
			return next(c)
		}
	}
}

func attachIdentity(c echo.Context, tokens TokenVerifier) bool {
	cookie, err := c.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return false
	}
	claims, ok := tokens.Verify(cookie.Value)
	if !ok {
		return false
	}
	setIdentity(c, claims.Identity())
	return true
}
