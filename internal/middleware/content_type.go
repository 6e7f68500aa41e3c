package middleware

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
)

// MsgUnsupportedContentType is returned with 415.
const MsgUnsupportedContentType = "Content-Type must be application/json"

// RequireJSON rejects requests whose Content-Type is not application/json.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isJSON(c.Request().Header.Get(echo.HeaderContentType)) {
				return apperror.New(apperror.CodeUnsupportedMedia, MsgUnsupportedContentType)
			}
			return next(c)
		}
	}
}

func isJSON(ct string) bool {
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(strings.ToLower(ct), echo.MIMEApplicationJSON)
	}
	return mt == echo.MIMEApplicationJSON
}
