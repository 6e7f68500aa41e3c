package middleware

// identity.go holds the context keys the auth middleware writes and the
// accessor handlers use to read the caller back.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/utils"
)

// TokenCookie is the name of the session cookie.
const TokenCookie = "token"

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

func setIdentity(c echo.Context, id utils.Identity) {
	c.Set(ctxUserID, id.UserID)
	c.Set(ctxEmail, id.Email)
	c.Set(ctxRole, id.Role)
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c echo.Context) (utils.Identity, bool) {
	uid, _ := c.Get(ctxUserID).(string)
	if uid == "" {
		return utils.Identity{}, false
	}
	email, _ := c.Get(ctxEmail).(string)
	role, _ := c.Get(ctxRole).(string)
	return utils.Identity{UserID: uid, Email: email, Role: role}, true
}

// Caller is IdentityFrom as a pointer, nil for anonymous requests.
func Caller(c echo.Context) *utils.Identity {
	if id, ok := IdentityFrom(c); ok {
		return &id
	}
	return nil
}
