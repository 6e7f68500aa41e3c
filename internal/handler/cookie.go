package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/middleware"
)

// CookieConfig shapes the session cookie.  In production it is Secure with
// SameSite=None so a separately hosted client can send it.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func (cc CookieConfig) cookie(value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if cc.Secure {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

func (cc CookieConfig) set(c echo.Context, token string) {
	ck := cc.cookie(token)
	ck.MaxAge = int(cc.TTL / time.Second)
	ck.Expires = time.Now().Add(cc.TTL)
	c.SetCookie(ck)
}

func (cc CookieConfig) clear(c echo.Context) {
	ck := cc.cookie("")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	c.SetCookie(ck)
}
